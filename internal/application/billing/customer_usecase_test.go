package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/application/dto"
	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/infrastructure/memory"
)

func TestCustomer_CreateRecalculaYRecorta(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewStore().Customers(), nil, nil)
	in := dto.CustomerRequest{Stranka: "  Novak  ", Email: " n@x.si "}
	in.Stages[0].Amount = decimal.NewFromInt(1000)
	in.Stages[0].WithVAT = decimal.NewFromInt(1)
	in.Stages[0].Received = decimal.NewFromInt(250)
	in.Stages[3].Amount = decimal.RequireFromString("0.10")

	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Novak", out.Stranka)
	assert.Equal(t, "n@x.si", out.Email)
	assert.True(t, out.Stages[0].WithVAT.Equal(decimal.NewFromInt(1220)))
	assert.True(t, out.Stages[3].WithVAT.Equal(decimal.RequireFromString("0.12")))
	assert.True(t, out.Skupaj.Equal(decimal.RequireFromString("1000.10")))
	assert.True(t, out.Izplacano.Equal(decimal.NewFromInt(250)))
	assert.True(t, out.Kontrola.Equal(decimal.RequireFromString("750.10")))
}

func TestCustomer_Errores(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewStore().Customers(), nil, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CustomerRequest{Stranka: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "6f1c1a52-5b7e-4f1e-9d7a-000000000000", dto.CustomerRequest{Stranka: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "abc"), domain.ErrNotFound)
}

func TestCustomer_UpdateConservaAlta(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewStore().Customers(), nil, nil)
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CustomerRequest{Stranka: "Novak", Kraj: "Celje"})
	require.NoError(t, err)

	in := dto.CustomerRequest{Stranka: "Novak d.o.o."}
	in.Stages[1].Amount = decimal.NewFromInt(10)
	got, err := uc.Update(ctx, c.ID, in)
	require.NoError(t, err)
	assert.Equal(t, c.CreatedAt, got.CreatedAt)
	assert.Empty(t, got.Kraj)
	assert.True(t, got.Skupaj.Equal(decimal.NewFromInt(10)))

	list, err := uc.List(ctx, "d.o.o", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}
