package billing

import (
	"context"

	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/repository"
)

// DocumentTxRunner ejecuta fn dentro de una transacción con un repositorio del tipo atado a ella.
// Si fn devuelve error se hace rollback: una modificación nunca deja un documento sin líneas.
type DocumentTxRunner interface {
	RunDocuments(ctx context.Context, kind document.Kind, fn func(repo repository.DocumentRepository) error) error
}

// DocumentPDFGenerator produce la representación PDF de un documento ya resuelto
// (estado, cliente, líneas y totales).
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, kind document.Kind, issuer entity.Issuer, doc *entity.Document) ([]byte, error)
}

// SpreadsheetExporter exporta listados a XLSX.
type SpreadsheetExporter interface {
	DocumentsXLSX(kind document.Kind, docs []*entity.Document) ([]byte, error)
	CustomersXLSX(customers []*entity.Customer) ([]byte, error)
}

// ESLOGBuilder construye el XML e-SLOG de facturas y notas de crédito.
type ESLOGBuilder interface {
	Build(kind document.Kind, issuer entity.Issuer, doc *entity.Document) ([]byte, error)
}

// DeliveryRequest pedido de envío real del correo con el PDF adjunto.
type DeliveryRequest struct {
	KindCode   string `json:"kind"`
	DocumentID string `json:"document_id"`
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// MailQueue encola envíos de correo. Es opcional: sin cola solo se devuelve el enlace mailto.
type MailQueue interface {
	EnqueueDelivery(ctx context.Context, req DeliveryRequest) error
}
