package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(q, p string) entity.LineItem {
	return entity.LineItem{Quantity: dec(q), Price: dec(p)}
}

func TestCalculateTotals_EjemploSvetovanje(t *testing.T) {
	tot := document.CalculateTotals([]entity.LineItem{item("2", "100")})
	assert.True(t, dec("200").Equal(tot.WithoutVAT), tot.WithoutVAT.String())
	assert.True(t, dec("44").Equal(tot.VAT), tot.VAT.String())
	assert.True(t, dec("244").Equal(tot.Payable), tot.Payable.String())
}

func TestCalculateTotals_ListaVacia(t *testing.T) {
	tot := document.CalculateTotals(nil)
	assert.True(t, tot.WithoutVAT.IsZero())
	assert.True(t, tot.VAT.IsZero())
	assert.True(t, tot.Payable.IsZero())
}

func TestCalculateTotals_Propiedades(t *testing.T) {
	lists := [][]entity.LineItem{
		{item("1", "0.1"), item("3", "0.1"), item("7", "13.37")},
		{item("1.5", "19.99"), item("0.333", "3")},
		{item("-1", "250"), item("2", "-10.5")}, // nota de crédito: negativos aceptados
		{item("1000", "0.005")},
		{item("0.333", "3"), item("0.333", "3"), item("0.333", "3")},
	}
	for _, items := range lists {
		tot := document.CalculateTotals(items)

		sum := decimal.Zero
		for _, it := range items {
			sum = sum.Add(it.Quantity.Mul(it.Price))
		}
		assert.True(t, sum.Equal(tot.WithoutVAT), "Σ(q×p)=%s totalWithoutVat=%s", sum, tot.WithoutVAT)
		assert.True(t, tot.WithoutVAT.Mul(dec("0.22")).Round(2).Equal(tot.VAT))
		assert.True(t, tot.WithoutVAT.Add(tot.VAT).Equal(tot.Payable))
	}
}

func TestCalculateTotals_LineasSinRedondeoPrevio(t *testing.T) {
	items := []entity.LineItem{item("0.333", "3"), item("0.333", "3"), item("0.333", "3")}
	tot := document.CalculateTotals(items)

	assert.True(t, dec("2.997").Equal(tot.WithoutVAT), tot.WithoutVAT.String())
	assert.True(t, dec("0.66").Equal(tot.VAT), tot.VAT.String())
	assert.True(t, dec("3.657").Equal(tot.Payable), tot.Payable.String())
	assert.True(t, dec("0.999").Equal(document.LineTotal(dec("0.333"), dec("3"))))
}

func TestRecalculate_IgnoraTotalesDelCliente(t *testing.T) {
	doc := &entity.Document{
		Items: []entity.LineItem{
			{Description: "Svetovanje", Quantity: dec("2"), Price: dec("100"), Total: dec("999")},
			{Description: "Potni stroški", Quantity: dec("1"), Price: dec("12.5"), Position: 9},
		},
		TotalWithoutVAT: dec("1"),
		VAT:             dec("1"),
		TotalPayable:    dec("1"),
	}
	document.Recalculate(doc)

	assert.True(t, dec("200").Equal(doc.Items[0].Total))
	assert.Equal(t, 1, doc.Items[0].Position)
	assert.Equal(t, 2, doc.Items[1].Position)
	assert.True(t, dec("212.5").Equal(doc.TotalWithoutVAT))
	assert.True(t, dec("46.75").Equal(doc.VAT))
	assert.True(t, dec("259.25").Equal(doc.TotalPayable))
}
