package vat_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/racunko-api/internal/domain/vat"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWithVAT(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"100":     "122",
		"1000.10": "1220.12",
		"0.01":    "0.01",
		"12.345":  "15.06",
		"-50":     "-61",
	}
	for in, want := range cases {
		assert.True(t, d(want).Equal(vat.WithVAT(d(in))), "WithVAT(%s) = %s, esperado %s", in, vat.WithVAT(d(in)), want)
	}
}

func TestOf(t *testing.T) {
	assert.True(t, d("44").Equal(vat.Of(d("200"))))
	assert.True(t, d("2.72").Equal(vat.Of(d("12.35"))))
}
