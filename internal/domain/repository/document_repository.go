package repository

import (
	"context"
	"time"

	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

// DocumentFilter filtros de listado de documentos.
type DocumentFilter struct {
	Status string
	Limit  int
	Offset int
}

// DocumentRepository persistencia de un tipo de documento y sus líneas.
// Cada instancia está atada a un document.Kind (tablas propias por tipo).
type DocumentRepository interface {
	// Create inserta la cabecera; domain.ErrDuplicate si el número ya existe en el tipo.
	Create(ctx context.Context, doc *entity.Document) error
	CreateItem(ctx context.Context, item *entity.LineItem) error
	// Update reemplaza los campos de cabecera (no el estado). domain.ErrNotFound si no existe.
	Update(ctx context.Context, doc *entity.Document) error
	// UpdateStatus fija estado y updated_at. domain.ErrNotFound si no existe.
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	DeleteItems(ctx context.Context, documentID string) error
	// Delete elimina la cabecera. domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
	// GetByID devuelve la cabecera con cliente y líneas; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetItems(ctx context.Context, documentID string) ([]entity.LineItem, error)
	// List devuelve cabecera + cliente + líneas, más recientes primero.
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, error)
	ExistsNumber(ctx context.Context, number string) (bool, error)
	// MaxSequence mayor N entre los números "<prefix>N" del tipo (0 si no hay).
	MaxSequence(ctx context.Context, prefix string) (int, error)
}
