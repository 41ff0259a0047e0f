// Package pdf genera la representación impresa de los documentos (račun, predračun,
// ponudba, dobropis) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + davčna      │  Tipo + número + fechas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Stranka / Naslov / Pošta Kraj / ID za DDV          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Opis | Količina | Cena | Znesek                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Skupaj brez DDV / DDV 22 % / Za plačilo            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: estado, descripción, IBAN + QR de pago              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/domain/vat"
	"github.com/jhoicas/racunko-api/pkg/money"
)

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// statusLabels etiqueta impresa de cada estado.
var statusLabels = map[string]string{
	entity.StatusDraft:     "Osnutek",
	entity.StatusSent:      "Poslano",
	entity.StatusPaid:      "Plačano",
	entity.StatusCancelled: "Preklicano",
	entity.StatusAccepted:  "Sprejeto",
	entity.StatusRejected:  "Zavrnjeno",
	entity.StatusProcessed: "Obdelano",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	ctx context.Context,
	kind document.Kind,
	issuer entity.Issuer,
	doc *entity.Document,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(kind.Title+" "+doc.Number, true).
		WithAuthor(issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(kind, issuer, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(doc.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(kind, issuer, doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y tipo + número + fechas (der).
func headerRow(kind document.Kind, issuer entity.Issuer, doc *entity.Document) core.Row {
	dates := []string{"Datum izdaje: " + formatDate(doc.IssueDate)}
	if doc.ServiceDate != nil {
		dates = append(dates, "Datum storitve: "+formatDate(doc.ServiceDate))
	}
	if doc.DueDate != nil {
		dates = append(dates, "Rok plačila: "+formatDate(doc.DueDate))
	}

	right := col.New(5).Add(
		text.New(strings.ToUpper(kind.Title), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New("št. "+doc.Number, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
		}),
	)
	for i, d := range dates {
		right.Add(text.New(d, props.Text{Size: 8, Align: align.Right, Top: float64(13 + 4*i), Color: colorGray}))
	}

	return row.New(26).Add(
		col.New(7).Add(
			text.New(nonEmpty(issuer.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(issuer.Address, ""), props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New(fmt.Sprintf("ID za DDV: %s   |   %s",
				nonEmpty(issuer.TaxID, "—"), nonEmpty(issuer.Email, "—"),
			), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		right,
	)
}

// customerRow: datos del cliente o aviso si ya no existe.
func customerRow(doc *entity.Document) core.Row {
	c := doc.Customer
	if c == nil {
		return row.New(10).Add(col.New(12).Add(
			text.New("KUPEC", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("(stranka ne obstaja več)", props.Text{Size: 9, Top: 5, Color: colorGray}),
		))
	}
	city := strings.TrimSpace(c.Posta + " " + c.Kraj)
	return row.New(20).Add(
		col.New(12).Add(
			text.New("KUPEC", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.Stranka, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(nonEmpty(c.Naslov, "")+"  "+city, props.Text{Size: 8, Top: 11}),
			text.New(fmt.Sprintf("ID za DDV: %s   |   %s",
				nonEmpty(c.Davcna, "—"), nonEmpty(c.Email, "—"),
			), props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Opis", 5, align.Left),
		h("Količina", 2, align.Right),
		h("Cena", 2, align.Right),
		h("Znesek", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows: una fila por línea.
func tableItemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Position), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.FormatQuantity(it.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.FormatEUR(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.FormatEUR(it.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *entity.Document) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
		})
	}
	vatLabel := fmt.Sprintf("DDV %s %%:", vat.Rate.Shift(2).StringFixed(0))

	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Skupaj brez DDV:", 1),
			label(vatLabel, 7),
			grand("ZA PLAČILO:", 13),
		),
		col.New(4).Add(
			value(money.FormatEUR(doc.TotalWithoutVAT), 1),
			value(money.FormatEUR(doc.VAT), 7),
			grand(money.FormatEUR(doc.TotalPayable), 13),
		),
	)
}

// footerRows: estado, descripción y, si hay IBAN, datos de pago con QR.
func footerRows(kind document.Kind, issuer entity.Issuer, doc *entity.Document) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Status: "+statusLabel(doc.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if doc.Description != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New(doc.Description, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}

	if issuer.IBAN != "" && kind.Code != document.CreditNote.Code {
		rows = append(rows, row.New(3), row.New(35).Add(
			col.New(3).Add(code.NewQr(paymentQR(issuer, doc), props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Podatki za plačilo", props.Text{Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary}),
				text.New(fmt.Sprintf("IBAN: %s", issuer.IBAN), props.Text{Size: 8, Top: 10, Left: 3}),
				text.New(fmt.Sprintf("Sklic: %s", doc.Number), props.Text{Size: 8, Top: 15, Left: 3}),
				text.New(fmt.Sprintf("Znesek: %s", money.FormatEUR(doc.TotalPayable)), props.Text{Size: 8, Top: 20, Left: 3}),
			),
		))
	}
	return rows
}

// paymentQR contenido del QR: datos mínimos para una orden de pago.
func paymentQR(issuer entity.Issuer, doc *entity.Document) string {
	return strings.Join([]string{
		"IBAN:" + strings.ReplaceAll(issuer.IBAN, " ", ""),
		"AMOUNT:" + doc.TotalPayable.StringFixed(2),
		"REF:" + doc.Number,
		"NAME:" + issuer.Name,
	}, "\n")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02.01.2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
