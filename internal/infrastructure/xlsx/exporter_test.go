package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

func open(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestDocumentsXLSX(t *testing.T) {
	issue := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	docs := []*entity.Document{{
		Number:          "2024-001",
		Customer:        &entity.CustomerSnapshot{Stranka: "ACME d.o.o."},
		IssueDate:       &issue,
		Status:          entity.StatusPaid,
		TotalWithoutVAT: decimal.NewFromInt(200),
		VAT:             decimal.NewFromInt(44),
		TotalPayable:    decimal.NewFromInt(244),
	}}

	b, err := NewExporter().DocumentsXLSX(document.Invoice, docs)
	require.NoError(t, err)

	f := open(t, b)
	assert.Equal(t, []string{"Račun"}, f.GetSheetList())
	rows, err := f.GetRows("Račun")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Številka", rows[0][0])
	assert.Equal(t, "2024-001", rows[1][0])
	assert.Equal(t, "ACME d.o.o.", rows[1][1])
	assert.Equal(t, "2024-03-01", rows[1][2])
	assert.Equal(t, "paid", rows[1][5])
	assert.Equal(t, "244", rows[1][9])
}

func TestCustomersXLSX(t *testing.T) {
	c := &entity.Customer{ID: "c1", Stranka: "Novak", Skupaj: decimal.NewFromInt(1000)}
	c.Stages[0].Amount = decimal.NewFromInt(1000)
	c.Stages[0].WithVAT = decimal.NewFromInt(1220)

	b, err := NewExporter().CustomersXLSX([]*entity.Customer{c})
	require.NoError(t, err)

	rows, err := open(t, b).GetRows(customersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "VLG", rows[0][9])
	assert.Equal(t, "VLG_z_DDV", rows[0][10])
	assert.Equal(t, "1220", rows[1][10])
	assert.Equal(t, "KONTROLA", rows[0][len(rows[0])-1])
}

func TestDocumentsXLSX_SinFilas(t *testing.T) {
	b, err := NewExporter().DocumentsXLSX(document.Offer, nil)
	require.NoError(t, err)
	rows, err := open(t, b).GetRows("Ponudba")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
