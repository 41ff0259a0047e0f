// Package vat concentra la tarifa de DDV y el redondeo monetario.
package vat

import "github.com/shopspring/decimal"

// Rate tarifa general de DDV (22 %).
var Rate = decimal.RequireFromString("0.22")

var withVATFactor = decimal.NewFromInt(1).Add(Rate)

// Round2 redondea a 2 decimales (half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Of devuelve el DDV de un importe neto, redondeado a céntimos.
func Of(net decimal.Decimal) decimal.Decimal {
	return Round2(net.Mul(Rate))
}

// WithVAT devuelve el importe con DDV: round(base × 1.22, 2).
func WithVAT(base decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(withVATFactor))
}
