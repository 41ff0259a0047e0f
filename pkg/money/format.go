// Package money formatea importes para documentos impresos y correos (locale esloveno).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Slovenian)

// Format devuelve el importe con 2 decimales y separadores eslovenos, p. ej. "1.234,56".
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}

// FormatEUR igual que Format con el sufijo de moneda.
func FormatEUR(d decimal.Decimal) string {
	return Format(d) + " €"
}

// FormatQuantity cantidades: sin decimales si es entera, si no hasta 3.
func FormatQuantity(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(0)
	}
	f, _ := d.Float64()
	return printer.Sprintf("%.3f", f)
}
