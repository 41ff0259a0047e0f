// Package memory implementa los repositorios en memoria para tests y modo demo.
// Las transacciones trabajan sobre una copia y solo se publican si el callback no falla.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/repository"
)

var _ billing.DocumentTxRunner = (*Store)(nil)

type docTable struct {
	headers map[string]*entity.Document // sin Items ni Customer
	items   map[string][]entity.LineItem
}

func newDocTable() *docTable {
	return &docTable{headers: map[string]*entity.Document{}, items: map[string][]entity.LineItem{}}
}

func (t *docTable) clone() *docTable {
	out := newDocTable()
	for id, d := range t.headers {
		c := *d
		out.headers[id] = &c
	}
	for id, its := range t.items {
		out.items[id] = append([]entity.LineItem(nil), its...)
	}
	return out
}

// Store estado compartido de clientes y documentos.
type Store struct {
	mu        sync.RWMutex
	customers map[string]*entity.Customer
	docs      map[string]*docTable // por Kind.Code
}

// NewStore crea un store vacío con una tabla por tipo de documento.
func NewStore() *Store {
	s := &Store{customers: map[string]*entity.Customer{}, docs: map[string]*docTable{}}
	for _, k := range document.Kinds() {
		s.docs[k.Code] = newDocTable()
	}
	return s
}

// Customers repositorio de clientes sobre el store.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Documents repositorio del tipo sobre el store (sin transacción).
func (s *Store) Documents(kind document.Kind) *DocumentRepo {
	return &DocumentRepo{s: s, kind: kind}
}

// RunDocuments ejecuta fn sobre una copia de la tabla del tipo y la publica solo si fn no falla.
// Mantiene el lock de escritura durante toda la transacción.
func (s *Store) RunDocuments(ctx context.Context, kind document.Kind, fn func(repo repository.DocumentRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.docs[kind.Code].clone()
	if err := fn(&DocumentRepo{s: s, kind: kind, locked: true, table: snapshot}); err != nil {
		return err
	}
	s.docs[kind.Code] = snapshot
	return nil
}
