package repository

import (
	"context"

	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

// CustomerFilter filtros de listado de clientes.
type CustomerFilter struct {
	Query  string // búsqueda parcial en Stranka o email
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, error)
	// Update devuelve domain.ErrNotFound si no hay fila.
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete devuelve domain.ErrNotFound si no hay fila.
	Delete(ctx context.Context, id string) error
}
