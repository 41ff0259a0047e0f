package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/repository"
)

// exportLimit tope de filas para exportaciones completas.
const exportLimit = 10000

// PDF genera el PDF del documento. Devuelve bytes y nombre de archivo.
func (uc *DocumentUseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateDocumentPDF(ctx, uc.kind, uc.issuer, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("%s_%s.pdf", uc.kind.FilePrefix, doc.Number), nil
}

// ExportXLSX exporta todos los documentos del tipo a una hoja de cálculo.
func (uc *DocumentUseCase) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	docs, err := uc.repo.List(ctx, repository.DocumentFilter{Limit: exportLimit})
	if err != nil {
		return nil, "", fmt.Errorf("listar %s: %w", uc.kind.Path, err)
	}
	b, err := uc.sheets.DocumentsXLSX(uc.kind, docs)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: %w", err)
	}
	return b, uc.kind.Path + ".xlsx", nil
}

// ESLOG genera el XML e-SLOG. Solo facturas y notas de crédito.
func (uc *DocumentUseCase) ESLOG(ctx context.Context, id string) ([]byte, string, error) {
	if !uc.kind.SupportsESLOG() {
		return nil, "", fmt.Errorf("%w: e-SLOG solo para facturas y notas de crédito", domain.ErrNotSupported)
	}
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.eslog.Build(uc.kind, uc.issuer, doc)
	if err != nil {
		return nil, "", fmt.Errorf("e-slog: %w", err)
	}
	return b, fmt.Sprintf("%s_%s.xml", uc.kind.FilePrefix, doc.Number), nil
}
