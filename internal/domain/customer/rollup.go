// Package customer contiene las reglas derivadas del registro de cliente.
package customer

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/vat"
)

// Recalculate recompone los campos derivados: <etapa>_z_DDV, SKUPAJ, Izplacano y KONTROLA.
// Se invoca en cada alta y modificación; los valores derivados enviados por el cliente se descartan.
func Recalculate(c *entity.Customer) {
	total := decimal.Zero
	paid := decimal.Zero
	for i := range c.Stages {
		st := &c.Stages[i]
		st.WithVAT = vat.WithVAT(st.Amount)
		total = total.Add(st.Amount)
		paid = paid.Add(st.Received)
	}
	c.Skupaj = total
	c.Izplacano = paid
	c.Kontrola = total.Sub(paid)
}
