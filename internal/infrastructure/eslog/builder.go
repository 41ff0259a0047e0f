// Package eslog genera XML e-SLOG 2.0 (segmentos M_INVOIC) para facturas y notas de crédito.
// Solo cubre lo necesario para intercambio sin firma: partes, líneas, DDV y totales.
package eslog

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/vat"
	"github.com/jhoicas/racunko-api/pkg/taxid"
)

// Namespace e-SLOG 2.00.
const Namespace = "urn:eslog:2.00"

// Códigos de importe (D_5025) usados en S_MOA.
const (
	moaLineAmount = "203"
	moaLinesTotal = "79"
	moaTaxable    = "125"
	moaNet        = "389"
	moaVAT        = "176"
	moaGross      = "388"
	moaPayable    = "9"
)

var _ appbilling.ESLOGBuilder = (*Builder)(nil)

// Builder implementa billing.ESLOGBuilder con etree.
type Builder struct {
	now func() time.Time
}

// NewBuilder construye el generador.
func NewBuilder() *Builder { return &Builder{now: time.Now} }

// Build genera el XML del documento. Devuelve ErrNotSupported para tipos sin código e-SLOG.
func (b *Builder) Build(kind document.Kind, issuer entity.Issuer, doc *entity.Document) ([]byte, error) {
	if !kind.SupportsESLOG() {
		return nil, fmt.Errorf("%w: %s no tiene representación e-SLOG", domain.ErrNotSupported, kind.Code)
	}
	if doc == nil {
		return nil, fmt.Errorf("eslog: documento nulo")
	}

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := x.CreateElement("Invoice")
	root.CreateAttr("xmlns", Namespace)
	inv := root.CreateElement("M_INVOIC")
	inv.CreateAttr("Id", "data")

	unh := inv.CreateElement("S_UNH")
	text(unh, "D_0062", doc.ID)
	s009 := unh.CreateElement("C_S009")
	text(s009, "D_0065", "INVOIC")
	text(s009, "D_0052", "D")
	text(s009, "D_0054", "01B")
	text(s009, "D_0051", "UN")

	bgm := inv.CreateElement("S_BGM")
	text(bgm.CreateElement("C_C002"), "D_1001", kind.ESLOGDocType)
	text(bgm.CreateElement("C_C106"), "D_1004", doc.Number)

	issue := b.now()
	if doc.IssueDate != nil {
		issue = *doc.IssueDate
	}
	date(inv, "137", &issue)
	date(inv, "35", doc.ServiceDate)

	if doc.Description != "" {
		ftx := inv.CreateElement("S_FTX")
		text(ftx, "D_4451", "GEN")
		text(ftx.CreateElement("C_C108"), "D_4440", doc.Description)
	}

	party(inv, "SE", issuer.Name, issuer.Address, "", "", issuer.TaxID)
	if c := doc.Customer; c != nil {
		party(inv, "BY", c.Stranka, c.Naslov, c.Posta, c.Kraj, c.Davcna)
	}
	if issuer.IBAN != "" {
		fii := inv.CreateElement("G_SG2").CreateElement("S_FII")
		text(fii, "D_3035", "RB")
		text(fii.CreateElement("C_C078"), "D_3194", issuer.IBAN)
	}

	if doc.DueDate != nil {
		sg8 := inv.CreateElement("G_SG8")
		pat := sg8.CreateElement("S_PAT")
		text(pat, "D_4279", "1")
		date(sg8, "13", doc.DueDate)
	}

	cux := inv.CreateElement("S_CUX").CreateElement("C_C504")
	text(cux, "D_6347", "2")
	text(cux, "D_6345", "EUR")

	rate := vat.Rate.Shift(2).StringFixed(0)
	for _, it := range doc.Items {
		sg26 := inv.CreateElement("G_SG26")
		text(sg26.CreateElement("S_LIN"), "D_1082", fmt.Sprintf("%d", it.Position))
		imd := sg26.CreateElement("S_IMD")
		text(imd, "D_7077", "F")
		text(imd.CreateElement("C_C273"), "D_7008", it.Description)
		qty := sg26.CreateElement("S_QTY").CreateElement("C_C186")
		text(qty, "D_6063", "47")
		text(qty, "D_6060", it.Quantity.String())
		text(qty, "D_6411", "H87")
		amount(sg26.CreateElement("G_SG27"), moaLineAmount, it.Total)
		pri := sg26.CreateElement("G_SG29").CreateElement("S_PRI").CreateElement("C_C509")
		text(pri, "D_5125", "AAA")
		text(pri, "D_5118", it.Price.StringFixed(2))
		tax(sg26.CreateElement("G_SG34"), rate)
	}

	amount(inv.CreateElement("G_SG50"), moaLinesTotal, doc.TotalWithoutVAT)
	amount(inv.CreateElement("G_SG50"), moaNet, doc.TotalWithoutVAT)
	amount(inv.CreateElement("G_SG50"), moaVAT, doc.VAT)
	amount(inv.CreateElement("G_SG50"), moaGross, doc.TotalPayable)
	amount(inv.CreateElement("G_SG50"), moaPayable, doc.TotalPayable)

	sg52 := inv.CreateElement("G_SG52")
	tax(sg52, rate)
	amount(sg52, moaTaxable, doc.TotalWithoutVAT)
	amount(sg52, moaVAT, doc.VAT)

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("eslog: serializar: %w", err)
	}
	return out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func text(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(value)
	return el
}

func date(parent *etree.Element, qualifier string, t *time.Time) {
	if t == nil {
		return
	}
	c := parent.CreateElement("S_DTM").CreateElement("C_C507")
	text(c, "D_2005", qualifier)
	text(c, "D_2380", t.Format("2006-01-02"))
}

func amount(parent *etree.Element, qualifier string, v decimal.Decimal) {
	c := parent.CreateElement("S_MOA").CreateElement("C_C516")
	text(c, "D_5025", qualifier)
	text(c, "D_5004", v.StringFixed(2))
}

func tax(parent *etree.Element, rate string) {
	t := parent.CreateElement("S_TAX")
	text(t, "D_5283", "7")
	text(t.CreateElement("C_C241"), "D_5153", "VAT")
	text(t.CreateElement("C_C243"), "D_5278", rate)
	text(t, "D_5305", "S")
}

func party(parent *etree.Element, role, name, street, postcode, city, taxID string) {
	sg2 := parent.CreateElement("G_SG2")
	nad := sg2.CreateElement("S_NAD")
	text(nad, "D_3035", role)
	text(nad.CreateElement("C_C080"), "D_3036", name)
	if street != "" {
		text(nad.CreateElement("C_C059"), "D_3042", street)
	}
	if city != "" {
		text(nad, "D_3164", city)
	}
	if postcode != "" {
		text(nad, "D_3251", postcode)
	}
	text(nad, "D_3207", "SI")
	if taxID != "" {
		rff := sg2.CreateElement("G_SG3").CreateElement("S_RFF").CreateElement("C_C506")
		text(rff, "D_1153", "VA")
		text(rff, "D_1154", taxid.VATNumber(taxID))
	}
}
