package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos de un tipo en memoria. Dentro de RunDocuments opera sobre la
// copia de la transacción (table) con el lock ya tomado.
type DocumentRepo struct {
	s      *Store
	kind   document.Kind
	locked bool
	table  *docTable
}

func (r *DocumentRepo) read(fn func(t *docTable)) {
	if r.locked {
		fn(r.table)
		return
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fn(r.s.docs[r.kind.Code])
}

func (r *DocumentRepo) write(fn func(t *docTable)) {
	if r.locked {
		fn(r.table)
		return
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	fn(r.s.docs[r.kind.Code])
}

func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	var err error
	r.write(func(t *docTable) {
		for _, d := range t.headers {
			if d.Number == doc.Number {
				err = fmt.Errorf("%w: número %s ya existe", domain.ErrDuplicate, doc.Number)
				return
			}
		}
		h := *doc
		h.Items, h.Customer = nil, nil
		t.headers[h.ID] = &h
	})
	return err
}

func (r *DocumentRepo) CreateItem(_ context.Context, item *entity.LineItem) error {
	var err error
	r.write(func(t *docTable) {
		if _, ok := t.headers[item.DocumentID]; !ok {
			err = fmt.Errorf("insert %s item: documento %s inexistente", r.kind.Code, item.DocumentID)
			return
		}
		t.items[item.DocumentID] = append(t.items[item.DocumentID], *item)
	})
	return err
}

func (r *DocumentRepo) Update(_ context.Context, doc *entity.Document) error {
	var err error
	r.write(func(t *docTable) {
		current, ok := t.headers[doc.ID]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		for id, d := range t.headers {
			if id != doc.ID && d.Number == doc.Number {
				err = fmt.Errorf("%w: número %s ya existe", domain.ErrDuplicate, doc.Number)
				return
			}
		}
		h := *doc
		h.Items, h.Customer = nil, nil
		h.Status = current.Status
		h.CreatedAt = current.CreatedAt
		t.headers[h.ID] = &h
	})
	return err
}

func (r *DocumentRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	var err error
	r.write(func(t *docTable) {
		d, ok := t.headers[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		d.Status = status
		d.UpdatedAt = updatedAt
	})
	return err
}

func (r *DocumentRepo) DeleteItems(_ context.Context, documentID string) error {
	r.write(func(t *docTable) { delete(t.items, documentID) })
	return nil
}

func (r *DocumentRepo) Delete(_ context.Context, id string) error {
	var err error
	r.write(func(t *docTable) {
		if _, ok := t.headers[id]; !ok {
			err = domain.ErrNotFound
			return
		}
		delete(t.headers, id)
		delete(t.items, id)
	})
	return err
}

func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	r.read(func(t *docTable) {
		if h, ok := t.headers[id]; ok {
			out = r.resolve(t, h)
		}
	})
	return out, nil
}

func (r *DocumentRepo) GetItems(_ context.Context, documentID string) ([]entity.LineItem, error) {
	var items []entity.LineItem
	r.read(func(t *docTable) { items = sortedItems(t.items[documentID]) })
	return items, nil
}

func (r *DocumentRepo) List(_ context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	var out []*entity.Document
	r.read(func(t *docTable) {
		for _, h := range t.headers {
			if filter.Status != "" && h.Status != filter.Status {
				continue
			}
			out = append(out, r.resolve(t, h))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *DocumentRepo) ExistsNumber(_ context.Context, number string) (bool, error) {
	exists := false
	r.read(func(t *docTable) {
		for _, d := range t.headers {
			if d.Number == number {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

func (r *DocumentRepo) MaxSequence(_ context.Context, prefix string) (int, error) {
	max := 0
	r.read(func(t *docTable) {
		for _, d := range t.headers {
			suffix, ok := strings.CutPrefix(d.Number, prefix)
			if !ok {
				continue
			}
			if n, err := strconv.Atoi(suffix); err == nil && n > max && !strings.HasPrefix(suffix, "+") && !strings.HasPrefix(suffix, "-") {
				max = n
			}
		}
	})
	return max, nil
}

// resolve copia la cabecera y une cliente (si existe) y líneas. Se llama con el lock tomado.
func (r *DocumentRepo) resolve(t *docTable, h *entity.Document) *entity.Document {
	d := *h
	d.Items = sortedItems(t.items[h.ID])
	if c, ok := r.s.customers[h.CustomerID]; ok {
		d.Customer = &entity.CustomerSnapshot{
			ID:      c.ID,
			Stranka: c.Stranka,
			Naslov:  c.Naslov,
			Posta:   c.Posta,
			Kraj:    c.Kraj,
			Davcna:  c.Davcna,
			Email:   c.Email,
		}
	}
	return &d
}

func sortedItems(items []entity.LineItem) []entity.LineItem {
	out := append([]entity.LineItem{}, items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
