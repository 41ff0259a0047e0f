package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/repository"
	"github.com/jhoicas/racunko-api/internal/infrastructure/memory"
)

func newDoc(id, number string) *entity.Document {
	return &entity.Document{ID: id, Number: number, CustomerID: "c1", Status: entity.StatusDraft, CreatedAt: time.Now()}
}

func TestRunDocuments_RollbackSiFalla(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("boom")

	err := s.RunDocuments(ctx, document.Invoice, func(repo repository.DocumentRepository) error {
		require.NoError(t, repo.Create(ctx, newDoc("d1", "2024-001")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Documents(document.Invoice).GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, got, "la cabecera no debe quedar tras el rollback")
}

func TestRunDocuments_CommitYSnapshotDeCliente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: "c1", Stranka: "ACME d.o.o."}))

	err := s.RunDocuments(ctx, document.Invoice, func(repo repository.DocumentRepository) error {
		if err := repo.Create(ctx, newDoc("d1", "2024-001")); err != nil {
			return err
		}
		return repo.CreateItem(ctx, &entity.LineItem{ID: "i1", DocumentID: "d1", Position: 1, Quantity: decimal.NewFromInt(2)})
	})
	require.NoError(t, err)

	got, err := s.Documents(document.Invoice).GetByID(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Customer)
	assert.Equal(t, "ACME d.o.o.", got.Customer.Stranka)
	assert.Len(t, got.Items, 1)

	require.NoError(t, s.Customers().Delete(ctx, "c1"))
	got, _ = s.Documents(document.Invoice).GetByID(ctx, "d1")
	assert.Nil(t, got.Customer, "cliente borrado: referencia huérfana")
}

func TestDocumentRepo_NumeroDuplicadoYTiposSeparados(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Documents(document.Invoice).Create(ctx, newDoc("d1", "2024-001")))

	err := s.Documents(document.Invoice).Create(ctx, newDoc("d2", "2024-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.NoError(t, s.Documents(document.Quote).Create(ctx, newDoc("d3", "2024-001")))
}

func TestDocumentRepo_MaxSequence(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repo := s.Documents(document.Offer)
	require.NoError(t, repo.Create(ctx, newDoc("a", "2024-007")))
	require.NoError(t, repo.Create(ctx, newDoc("b", "2024-012")))
	require.NoError(t, repo.Create(ctx, newDoc("c", "2024-X")))
	require.NoError(t, repo.Create(ctx, newDoc("d", "2023-099")))

	n, err := repo.MaxSequence(ctx, "2024-")
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestCustomerRepo_ListFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Customers()
	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "1", Stranka: "Zeta", Email: "z@x.si"}))
	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "2", Stranka: "Alfa", Email: "info@alfa.si"}))

	all, err := repo.List(ctx, repository.CustomerFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alfa", all[0].Stranka)

	found, err := repo.List(ctx, repository.CustomerFilter{Query: "ALFA", Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "2", found[0].ID)

	assert.ErrorIs(t, repo.Delete(ctx, "nope"), domain.ErrNotFound)
}
