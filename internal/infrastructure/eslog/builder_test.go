package eslog

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

func sampleDoc() *entity.Document {
	issue := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Document{
		ID:        "d1",
		Number:    "2024-001",
		Customer:  &entity.CustomerSnapshot{Stranka: "ACME d.o.o.", Davcna: "8765 4326"},
		IssueDate: &issue,
		Items: []entity.LineItem{
			{Position: 1, Description: "Delo", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(100), Total: decimal.NewFromInt(200)},
		},
		TotalWithoutVAT: decimal.NewFromInt(200),
		VAT:             decimal.NewFromInt(44),
		TotalPayable:    decimal.NewFromInt(244),
	}
}

func parse(t *testing.T, b []byte) *etree.Document {
	t.Helper()
	x := etree.NewDocument()
	require.NoError(t, x.ReadFromBytes(b))
	return x
}

func TestBuild_Factura(t *testing.T) {
	b, err := NewBuilder().Build(document.Invoice, entity.Issuer{Name: "Računko s.p.", TaxID: "SI12345678"}, sampleDoc())
	require.NoError(t, err)

	x := parse(t, b)
	assert.Equal(t, "380", x.FindElement("//S_BGM/C_C002/D_1001").Text())
	assert.Equal(t, "2024-001", x.FindElement("//S_BGM/C_C106/D_1004").Text())
	assert.Equal(t, "2024-03-01", x.FindElement("//S_DTM/C_C507/D_2380").Text())
	assert.Len(t, x.FindElements("//G_SG26"), 1)

	totals := map[string]string{}
	for _, moa := range x.FindElements("//G_SG50/S_MOA/C_C516") {
		totals[moa.SelectElement("D_5025").Text()] = moa.SelectElement("D_5004").Text()
	}
	assert.Equal(t, "200.00", totals[moaNet])
	assert.Equal(t, "44.00", totals[moaVAT])
	assert.Equal(t, "244.00", totals[moaPayable])
	assert.Equal(t, "22", x.FindElement("//G_SG52/S_TAX/C_C243/D_5278").Text())
}

func TestBuild_IdentificadorDDV(t *testing.T) {
	b, err := NewBuilder().Build(document.Invoice, entity.Issuer{Name: "Računko s.p.", TaxID: "SI12345678"}, sampleDoc())
	require.NoError(t, err)

	ids := map[string]string{}
	for _, sg2 := range parse(t, b).FindElements("//G_SG2") {
		role := sg2.FindElement("S_NAD/D_3035").Text()
		if el := sg2.FindElement("G_SG3/S_RFF/C_C506/D_1154"); el != nil {
			ids[role] = el.Text()
		}
	}
	assert.Equal(t, "SI87654326", ids["BY"], "número válido normalizado")
	assert.Equal(t, "SI12345678", ids["SE"], "número no verificable se copia tal cual")
}

func TestBuild_NotaDeCredito(t *testing.T) {
	b, err := NewBuilder().Build(document.CreditNote, entity.Issuer{Name: "X"}, sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, "381", parse(t, b).FindElement("//S_BGM/C_C002/D_1001").Text())
}

func TestBuild_TipoSinESLOG(t *testing.T) {
	_, err := NewBuilder().Build(document.Quote, entity.Issuer{}, sampleDoc())
	assert.ErrorIs(t, err, domain.ErrNotSupported)
}

func TestBuild_Partes(t *testing.T) {
	b, err := NewBuilder().Build(document.Invoice, entity.Issuer{Name: "Računko s.p.", IBAN: "SI56 0110"}, sampleDoc())
	require.NoError(t, err)
	x := parse(t, b)
	roles := []string{}
	for _, el := range x.FindElements("//S_NAD/D_3035") {
		roles = append(roles, el.Text())
	}
	assert.Equal(t, []string{"SE", "BY"}, roles)
	assert.Equal(t, "SI56 0110", x.FindElement("//S_FII/C_C078/D_3194").Text())
}
