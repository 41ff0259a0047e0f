package customer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/racunko-api/internal/domain/customer"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecalculate_ZDDVYTotales(t *testing.T) {
	c := &entity.Customer{Stranka: "Acme d.o.o."}
	c.Stages[0] = entity.Stage{Amount: dec("1000"), Received: dec("1000"), WithVAT: dec("1")}
	c.Stages[1] = entity.Stage{Amount: dec("333.33")}
	c.Stages[6] = entity.Stage{Amount: dec("10.01"), Received: dec("5")}

	customer.Recalculate(c)

	assert.True(t, dec("1220").Equal(c.Stages[0].WithVAT))
	assert.True(t, dec("406.66").Equal(c.Stages[1].WithVAT)) // 406.6626
	assert.True(t, dec("12.21").Equal(c.Stages[6].WithVAT))  // 12.2122
	assert.True(t, c.Stages[3].WithVAT.IsZero())

	assert.True(t, dec("1343.34").Equal(c.Skupaj))
	assert.True(t, dec("1005").Equal(c.Izplacano))
	assert.True(t, dec("338.34").Equal(c.Kontrola))
}

func TestRecalculate_CadaEtapaCumpleInvariante(t *testing.T) {
	c := &entity.Customer{}
	for i := range c.Stages {
		c.Stages[i].Amount = decimal.NewFromFloat(123.456 * float64(i+1))
	}
	customer.Recalculate(c)
	for i, st := range c.Stages {
		assert.True(t, st.Amount.Mul(dec("1.22")).Round(2).Equal(st.WithVAT), entity.StageCodes[i])
	}
}
