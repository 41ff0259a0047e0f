package document

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/vat"
)

// Totals importes derivados de las líneas.
type Totals struct {
	WithoutVAT decimal.Decimal
	VAT        decimal.Decimal
	Payable    decimal.Decimal
}

// LineTotal quantity × price exacto, sin redondear. Se aceptan negativos.
func LineTotal(quantity, price decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price)
}

// CalculateTotals suma las líneas exactas y aplica el 22 % de DDV; solo el DDV se redondea a
// céntimos. Lista vacía = todo cero.
func CalculateTotals(items []entity.LineItem) Totals {
	net := decimal.Zero
	for _, it := range items {
		net = net.Add(LineTotal(it.Quantity, it.Price))
	}
	tax := vat.Of(net)
	return Totals{WithoutVAT: net, VAT: tax, Payable: net.Add(tax)}
}

// Recalculate reescribe total y posición de cada línea y los totales de la cabecera.
// Los importes enviados por el cliente nunca se persisten tal cual.
func Recalculate(doc *entity.Document) {
	for i := range doc.Items {
		doc.Items[i].Position = i + 1
		doc.Items[i].Total = LineTotal(doc.Items[i].Quantity, doc.Items[i].Price)
	}
	t := CalculateTotals(doc.Items)
	doc.TotalWithoutVAT = t.WithoutVAT
	doc.VAT = t.VAT
	doc.TotalPayable = t.Payable
}
