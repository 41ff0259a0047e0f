package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository para un tipo (usable con pool o tx).
// Los nombres de tabla salen de document.Kind, nunca de la entrada del usuario.
type DocumentRepo struct {
	q    Querier
	kind document.Kind
}

// NewDocumentRepository construye el adaptador del tipo. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier, kind document.Kind) *DocumentRepo {
	return &DocumentRepo{q: q, kind: kind}
}

// Create persiste la cabecera.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, number, customer_id, issue_date, due_date, service_date, description, status,
		                total_without_vat, vat, total_payable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`, r.kind.HeaderTable)
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Number, doc.CustomerID, dateOnly(doc.IssueDate), dateOnly(doc.DueDate), dateOnly(doc.ServiceDate),
		doc.Description, doc.Status, doc.TotalWithoutVAT, doc.VAT, doc.TotalPayable, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número %s ya existe", domain.ErrDuplicate, doc.Number)
		}
		return fmt.Errorf("insert %s: %w", r.kind.Code, err)
	}
	return nil
}

// CreateItem persiste una línea.
func (r *DocumentRepo) CreateItem(ctx context.Context, item *entity.LineItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, document_id, position, description, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, r.kind.ItemsTable)
	_, err := r.q.Exec(ctx, query,
		item.ID, item.DocumentID, item.Position, item.Description, item.Quantity, item.Price, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert %s item: %w", r.kind.Code, err)
	}
	return nil
}

// Update reemplaza la cabecera salvo estado y created_at.
func (r *DocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET number            = $2,
		    customer_id       = $3,
		    issue_date        = $4,
		    due_date          = $5,
		    service_date      = $6,
		    description       = $7,
		    total_without_vat = $8,
		    vat               = $9,
		    total_payable     = $10,
		    updated_at        = $11
		WHERE id = $1`, r.kind.HeaderTable)
	tag, err := r.q.Exec(ctx, query,
		doc.ID, doc.Number, doc.CustomerID, dateOnly(doc.IssueDate), dateOnly(doc.DueDate), dateOnly(doc.ServiceDate),
		doc.Description, doc.TotalWithoutVAT, doc.VAT, doc.TotalPayable, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número %s ya existe", domain.ErrDuplicate, doc.Number)
		}
		return fmt.Errorf("update %s: %w", r.kind.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus fija el estado.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $2, updated_at = $3 WHERE id = $1`, r.kind.HeaderTable)
	tag, err := r.q.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update %s status: %w", r.kind.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems borra todas las líneas del documento.
func (r *DocumentRepo) DeleteItems(ctx context.Context, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.kind.ItemsTable)
	if _, err := r.q.Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("delete %s items: %w", r.kind.Code, err)
	}
	return nil
}

// Delete borra la cabecera.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.kind.HeaderTable)
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.kind.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// headerSelect cabecera + snapshot del cliente (LEFT JOIN: el cliente puede no existir).
func (r *DocumentRepo) headerSelect() string {
	return fmt.Sprintf(`
		SELECT d.id, d.number, d.customer_id, d.issue_date, d.due_date, d.service_date, d.description, d.status,
		       d.total_without_vat, d.vat, d.total_payable, d.created_at, d.updated_at,
		       c.id, c.stranka, c.naslov, c.posta, c.kraj, c.davcna, c.email
		FROM %s d
		LEFT JOIN customers c ON c.id = d.customer_id`, r.kind.HeaderTable)
}

// joinedRow fila del modelo de lectura: cabecera, cliente opcional y línea opcional.
type joinedRow struct {
	doc entity.Document

	custID, custStranka, custNaslov, custPosta, custKraj, custDavcna, custEmail *string

	itemID          *string
	itemPosition    *int
	itemDescription *string
	itemQuantity    *decimal.Decimal
	itemPrice       *decimal.Decimal
	itemTotal       *decimal.Decimal
}

func (j *joinedRow) headerTargets() []any {
	d := &j.doc
	return []any{
		&d.ID, &d.Number, &d.CustomerID, &d.IssueDate, &d.DueDate, &d.ServiceDate, &d.Description, &d.Status,
		&d.TotalWithoutVAT, &d.VAT, &d.TotalPayable, &d.CreatedAt, &d.UpdatedAt,
		&j.custID, &j.custStranka, &j.custNaslov, &j.custPosta, &j.custKraj, &j.custDavcna, &j.custEmail,
	}
}

func (j *joinedRow) itemTargets() []any {
	return []any{&j.itemID, &j.itemPosition, &j.itemDescription, &j.itemQuantity, &j.itemPrice, &j.itemTotal}
}

func (j *joinedRow) document() *entity.Document {
	d := j.doc
	if j.custID != nil {
		d.Customer = &entity.CustomerSnapshot{
			ID:      *j.custID,
			Stranka: derefString(j.custStranka),
			Naslov:  derefString(j.custNaslov),
			Posta:   derefString(j.custPosta),
			Kraj:    derefString(j.custKraj),
			Davcna:  derefString(j.custDavcna),
			Email:   derefString(j.custEmail),
		}
	}
	d.Items = []entity.LineItem{}
	return &d
}

func (j *joinedRow) item() (entity.LineItem, bool) {
	if j.itemID == nil {
		return entity.LineItem{}, false
	}
	it := entity.LineItem{ID: *j.itemID, DocumentID: j.doc.ID, Description: derefString(j.itemDescription)}
	if j.itemPosition != nil {
		it.Position = *j.itemPosition
	}
	if j.itemQuantity != nil {
		it.Quantity = *j.itemQuantity
	}
	if j.itemPrice != nil {
		it.Price = *j.itemPrice
	}
	if j.itemTotal != nil {
		it.Total = *j.itemTotal
	}
	return it, true
}

// GetByID obtiene cabecera, cliente y líneas.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	var row joinedRow
	err := r.q.QueryRow(ctx, r.headerSelect()+` WHERE d.id = $1`, id).Scan(row.headerTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.kind.Code, err)
	}
	doc := row.document()
	items, err := r.GetItems(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Items = items
	return doc, nil
}

// GetItems devuelve las líneas ordenadas por posición.
func (r *DocumentRepo) GetItems(ctx context.Context, documentID string) ([]entity.LineItem, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, position, description, quantity, price, total
		FROM %s WHERE document_id = $1
		ORDER BY position, id`, r.kind.ItemsTable)
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("get %s items: %w", r.kind.Code, err)
	}
	defer rows.Close()

	items := []entity.LineItem{}
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.Position, &it.Description, &it.Quantity, &it.Price, &it.Total); err != nil {
			return nil, fmt.Errorf("scan %s item: %w", r.kind.Code, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List una sola consulta: página de cabeceras + cliente + líneas, agrupadas por documento.
func (r *DocumentRepo) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	query := fmt.Sprintf(`
		WITH page AS (
			SELECT * FROM %[1]s
			WHERE ($1 = '' OR status = $1)
			ORDER BY created_at DESC, id
			LIMIT $2 OFFSET $3
		)
		SELECT d.id, d.number, d.customer_id, d.issue_date, d.due_date, d.service_date, d.description, d.status,
		       d.total_without_vat, d.vat, d.total_payable, d.created_at, d.updated_at,
		       c.id, c.stranka, c.naslov, c.posta, c.kraj, c.davcna, c.email,
		       i.id, i.position, i.description, i.quantity, i.price, i.total
		FROM page d
		LEFT JOIN customers c ON c.id = d.customer_id
		LEFT JOIN %[2]s i ON i.document_id = d.id
		ORDER BY d.created_at DESC, d.id, i.position`, r.kind.HeaderTable, r.kind.ItemsTable)
	rows, err := r.q.Query(ctx, query, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind.Code, err)
	}
	defer rows.Close()

	var out []*entity.Document
	var current *entity.Document
	for rows.Next() {
		var row joinedRow
		if err := rows.Scan(append(row.headerTargets(), row.itemTargets()...)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.kind.Code, err)
		}
		if current == nil || current.ID != row.doc.ID {
			current = row.document()
			out = append(out, current)
		}
		if it, ok := row.item(); ok {
			current.Items = append(current.Items, it)
		}
	}
	return out, rows.Err()
}

// ExistsNumber informa si el número ya está usado en el tipo.
func (r *DocumentRepo) ExistsNumber(ctx context.Context, number string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE number = $1)`, r.kind.HeaderTable)
	var exists bool
	if err := r.q.QueryRow(ctx, query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s number: %w", r.kind.Code, err)
	}
	return exists, nil
}

// MaxSequence mayor sufijo numérico entre los números que empiezan por prefix.
func (r *DocumentRepo) MaxSequence(ctx context.Context, prefix string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(CAST(suffix AS INTEGER)), 0)
		FROM (
			SELECT substring(number FROM char_length($1) + 1) AS suffix
			FROM %s
			WHERE starts_with(number, $1)
		) s
		WHERE suffix ~ '^[0-9]{1,9}$'`, r.kind.HeaderTable)
	var max int
	if err := r.q.QueryRow(ctx, query, prefix).Scan(&max); err != nil {
		return 0, fmt.Errorf("max %s sequence: %w", r.kind.Code, err)
	}
	return max, nil
}
