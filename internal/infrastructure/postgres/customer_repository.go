package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// customerColumns columnas de customers en el orden de customerFields. Las de etapa se
// generan a partir de entity.StageCodes (vlg, vlg_z_ddv, vlg_prejeto, vlg_status, vlg_racun, ...).
var customerColumns = buildCustomerColumns()

func buildCustomerColumns() []string {
	cols := []string{"id", "stranka", "naslov", "posta", "kraj", "davcna", "telefon", "email", "opombe"}
	for _, code := range entity.StageCodes {
		c := strings.ToLower(code)
		cols = append(cols, c, c+"_z_ddv", c+"_prejeto", c+"_status", c+"_racun")
	}
	return append(cols, "skupaj", "izplacano", "kontrola", "created_at", "updated_at")
}

// customerFields punteros a los campos de c, alineados con customerColumns (sirve para Scan y para args).
func customerFields(c *entity.Customer) []any {
	f := []any{&c.ID, &c.Stranka, &c.Naslov, &c.Posta, &c.Kraj, &c.Davcna, &c.Telefon, &c.Email, &c.Opombe}
	for i := range c.Stages {
		st := &c.Stages[i]
		f = append(f, &st.Amount, &st.WithVAT, &st.Received, &st.Status, &st.InvoiceIssued)
	}
	return append(f, &c.Skupaj, &c.Izplacano, &c.Kontrola, &c.CreatedAt, &c.UpdatedAt)
}

func placeholders(from, n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(p, ", ")
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := fmt.Sprintf(`INSERT INTO customers (%s) VALUES (%s)`,
		strings.Join(customerColumns, ", "), placeholders(1, len(customerColumns)))
	if _, err := r.q.Exec(ctx, query, customerFields(customer)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, strings.Join(customerColumns, ", "))
	var c entity.Customer
	if err := r.q.QueryRow(ctx, query, id).Scan(customerFields(&c)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista clientes por nombre con búsqueda opcional y paginación.
func (r *CustomerRepo) List(ctx context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers
		WHERE ($1 = '' OR stranka ILIKE '%%' || $1 || '%%' OR email ILIKE '%%' || $1 || '%%')
		ORDER BY stranka, id
		LIMIT $2 OFFSET $3`, strings.Join(customerColumns, ", "))
	rows, err := r.q.Query(ctx, query, escapeLike(filter.Query), filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(customerFields(&c)...); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update reemplaza todas las columnas salvo id y created_at.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	fields := customerFields(customer)
	sets := make([]string, 0, len(customerColumns))
	args := []any{customer.ID}
	for i, col := range customerColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		args = append(args, fields[i])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	query := fmt.Sprintf(`UPDATE customers SET %s WHERE id = $1`, strings.Join(sets, ", "))
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente. Los documentos conservan customer_id (sin FK).
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
