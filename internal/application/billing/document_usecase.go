package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/racunko-api/internal/application/dto"
	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/repository"
	"github.com/jhoicas/racunko-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// DocumentDeps dependencias de DocumentUseCase. Mail es opcional.
type DocumentDeps struct {
	Repo      repository.DocumentRepository
	Customers repository.CustomerRepository
	Tx        DocumentTxRunner
	PDF       DocumentPDFGenerator
	Sheets    SpreadsheetExporter
	ESLOG     ESLOGBuilder
	Mail      MailQueue
	Issuer    entity.Issuer
	Log       *logger.Logger
	Now       func() time.Time // nil = time.Now
}

// DocumentUseCase CRUD, ciclo de estados y exportaciones de un tipo de documento.
// Hay una instancia por document.Kind; la lógica es la misma para los cuatro tipos.
type DocumentUseCase struct {
	kind      document.Kind
	repo      repository.DocumentRepository
	customers repository.CustomerRepository
	tx        DocumentTxRunner
	pdf       DocumentPDFGenerator
	sheets    SpreadsheetExporter
	eslog     ESLOGBuilder
	mail      MailQueue
	issuer    entity.Issuer
	log       *logger.Logger
	now       func() time.Time
}

// NewDocumentUseCase construye el caso de uso para kind.
func NewDocumentUseCase(kind document.Kind, deps DocumentDeps) *DocumentUseCase {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &DocumentUseCase{
		kind:      kind,
		repo:      deps.Repo,
		customers: deps.Customers,
		tx:        deps.Tx,
		pdf:       deps.PDF,
		sheets:    deps.Sheets,
		eslog:     deps.ESLOG,
		mail:      deps.Mail,
		issuer:    deps.Issuer,
		log:       log.WithComponent(kind.Code),
		now:       now,
	}
}

// Kind tipo al que está atado el caso de uso.
func (uc *DocumentUseCase) Kind() document.Kind { return uc.kind }

// Create valida, asigna número (indicado o generado), recalcula importes y guarda
// cabecera y líneas en una transacción. El documento nace en draft.
func (uc *DocumentUseCase) Create(ctx context.Context, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.buildDocument(ctx, in)
	if err != nil {
		return nil, err
	}

	number := in.ResolveNumber(uc.kind.NumberField)
	if number == "" {
		number, err = uc.nextNumber(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := uc.repo.ExistsNumber(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("comprobar número: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: ya existe %s con número %s", domain.ErrDuplicate, uc.kind.Code, number)
		}
	}

	now := uc.now()
	doc.ID = uuid.New().String()
	doc.Number = number
	doc.Status = uc.kind.InitialStatus()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	for i := range doc.Items {
		doc.Items[i].ID = uuid.New().String()
		doc.Items[i].DocumentID = doc.ID
	}

	err = uc.tx.RunDocuments(ctx, uc.kind, func(repo repository.DocumentRepository) error {
		if err := repo.Create(ctx, doc); err != nil {
			return err
		}
		for i := range doc.Items {
			if err := repo.CreateItem(ctx, &doc.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", doc.ID).Str("number", doc.Number).Msg("documento creado")
	return uc.toResponse(doc), nil
}

// Get devuelve el documento con cliente y líneas.
func (uc *DocumentUseCase) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(doc), nil
}

// List lista documentos, más recientes primero.
func (uc *DocumentUseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	page.DefaultPage()
	if status != "" && !uc.kind.AllowsStatus(status) {
		return nil, fmt.Errorf("%w: filtro status=%q", domain.ErrInvalidStatus, status)
	}
	docs, err := uc.repo.List(ctx, repository.DocumentFilter{Status: status, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", uc.kind.Path, err)
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, uc.toResponse(d))
	}
	return out, nil
}

// Update reemplaza cabecera y líneas (borrar y reinsertar) en una sola transacción.
// El estado no se modifica aquí; para eso está UpdateStatus.
func (uc *DocumentUseCase) Update(ctx context.Context, id string, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := uc.buildDocument(ctx, in)
	if err != nil {
		return nil, err
	}

	doc.ID = current.ID
	doc.Number = current.Number
	doc.Status = current.Status
	doc.CreatedAt = current.CreatedAt
	doc.UpdatedAt = uc.now()
	if number := in.ResolveNumber(uc.kind.NumberField); number != "" && number != current.Number {
		exists, err := uc.repo.ExistsNumber(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("comprobar número: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: ya existe %s con número %s", domain.ErrDuplicate, uc.kind.Code, number)
		}
		doc.Number = number
	}
	for i := range doc.Items {
		doc.Items[i].ID = uuid.New().String()
		doc.Items[i].DocumentID = doc.ID
	}

	err = uc.tx.RunDocuments(ctx, uc.kind, func(repo repository.DocumentRepository) error {
		if err := repo.Update(ctx, doc); err != nil {
			return err
		}
		if err := repo.DeleteItems(ctx, doc.ID); err != nil {
			return err
		}
		for i := range doc.Items {
			if err := repo.CreateItem(ctx, &doc.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete elimina líneas y cabecera en una transacción.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	err := uc.tx.RunDocuments(ctx, uc.kind, func(repo repository.DocumentRepository) error {
		if err := repo.DeleteItems(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("id", id).Msg("documento eliminado")
	return nil
}

// UpdateStatus fija el estado si pertenece a la lista del tipo. Es idempotente y no
// comprueba el estado de origen.
func (uc *DocumentUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.DocumentResponse, error) {
	status = strings.TrimSpace(status)
	if err := uc.kind.ValidateStatus(status); err != nil {
		return nil, err
	}
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.setStatus(ctx, doc, status); err != nil {
		return nil, err
	}
	return uc.toResponse(doc), nil
}

// MarkSentIfDraft transición centralizada draft → sent. Devuelve el estado resultante.
func (uc *DocumentUseCase) MarkSentIfDraft(ctx context.Context, doc *entity.Document) (string, error) {
	if !document.ShouldMarkSent(doc.Status) {
		return doc.Status, nil
	}
	if err := uc.setStatus(ctx, doc, entity.StatusSent); err != nil {
		return doc.Status, err
	}
	return doc.Status, nil
}

func (uc *DocumentUseCase) setStatus(ctx context.Context, doc *entity.Document, status string) error {
	now := uc.now()
	if err := uc.repo.UpdateStatus(ctx, doc.ID, status, now); err != nil {
		return fmt.Errorf("actualizar estado: %w", err)
	}
	uc.log.Info().Str("id", doc.ID).Str("from", doc.Status).Str("to", status).Msg("estado actualizado")
	doc.Status = status
	doc.UpdatedAt = now
	return nil
}

func (uc *DocumentUseCase) load(ctx context.Context, id string) (*entity.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener %s: %w", uc.kind.Code, err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// buildDocument valida cliente y fechas y arma la entidad con importes recalculados.
func (uc *DocumentUseCase) buildDocument(ctx context.Context, in dto.DocumentRequest) (*entity.Document, error) {
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: el cliente %s no existe", domain.ErrInvalidInput, in.CustomerID)
	}

	doc := &entity.Document{
		CustomerID:  customer.ID,
		Customer:    snapshotOf(customer),
		Description: strings.TrimSpace(in.Description),
		Items:       make([]entity.LineItem, 0, len(in.Items)),
	}
	if doc.IssueDate, err = parseDate("issueDate", in.IssueDate); err != nil {
		return nil, err
	}
	if doc.DueDate, err = parseDate("dueDate", in.DueDate); err != nil {
		return nil, err
	}
	if doc.ServiceDate, err = parseDate("serviceDate", in.ServiceDate); err != nil {
		return nil, err
	}
	if doc.IssueDate == nil {
		y, m, d := uc.now().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		doc.IssueDate = &today
	}
	for _, it := range in.Items {
		doc.Items = append(doc.Items, entity.LineItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	document.Recalculate(doc)
	return doc, nil
}

// nextNumber genera "<año>-NNN" con la siguiente secuencia libre del tipo.
func (uc *DocumentUseCase) nextNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("%d-", uc.now().Year())
	last, err := uc.repo.MaxSequence(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("generar número: %w", err)
	}
	return fmt.Sprintf("%s%03d", prefix, last+1), nil
}

func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return &t, nil
}

func snapshotOf(c *entity.Customer) *entity.CustomerSnapshot {
	return &entity.CustomerSnapshot{
		ID:      c.ID,
		Stranka: c.Stranka,
		Naslov:  c.Naslov,
		Posta:   c.Posta,
		Kraj:    c.Kraj,
		Davcna:  c.Davcna,
		Email:   c.Email,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func (uc *DocumentUseCase) toResponse(doc *entity.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:              doc.ID,
		Kind:            uc.kind.Code,
		Number:          doc.Number,
		CustomerID:      doc.CustomerID,
		IssueDate:       formatDate(doc.IssueDate),
		DueDate:         formatDate(doc.DueDate),
		ServiceDate:     formatDate(doc.ServiceDate),
		Description:     doc.Description,
		Status:          doc.Status,
		Items:           make([]dto.DocumentItemResponse, 0, len(doc.Items)),
		TotalWithoutVAT: doc.TotalWithoutVAT,
		VAT:             doc.VAT,
		TotalPayable:    doc.TotalPayable,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	resp.SetNumberAlias(uc.kind.NumberField)
	if c := doc.Customer; c != nil {
		resp.Customer = &dto.CustomerSnapshotResponse{
			ID:      c.ID,
			Stranka: c.Stranka,
			Naslov:  c.Naslov,
			Posta:   c.Posta,
			Kraj:    c.Kraj,
			Davcna:  c.Davcna,
			Email:   c.Email,
		}
	}
	for _, it := range doc.Items {
		resp.Items = append(resp.Items, dto.DocumentItemResponse{
			ID:          it.ID,
			Position:    it.Position,
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		})
	}
	return resp
}
