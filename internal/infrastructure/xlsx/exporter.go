// Package xlsx exporta listados de clientes y documentos a hojas de cálculo (excelize).
package xlsx

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appbilling "github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

var _ appbilling.SpreadsheetExporter = (*Exporter)(nil)

const (
	customersSheet = "Stranke"
	dateFormat     = "2006-01-02"
)

// Exporter implementa billing.SpreadsheetExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// CustomersXLSX una fila por cliente con todas las columnas, incluidas etapas y totales.
func (e *Exporter) CustomersXLSX(customers []*entity.Customer) ([]byte, error) {
	header := []any{"ID", "Stranka", "Naslov", "Posta", "Kraj", "Davcna", "Telefon", "email", "Opombe"}
	for _, code := range entity.StageCodes {
		header = append(header, code, code+"_z_DDV", code+"_prejeto", code+"_status", code+"_racun")
	}
	header = append(header, "SKUPAJ", "Izplacano", "KONTROLA")

	rows := make([][]any, 0, len(customers))
	for _, c := range customers {
		r := []any{c.ID, c.Stranka, c.Naslov, c.Posta, c.Kraj, c.Davcna, c.Telefon, c.Email, c.Opombe}
		for _, st := range c.Stages {
			r = append(r, num(st.Amount), num(st.WithVAT), num(st.Received), st.Status, st.InvoiceIssued)
		}
		r = append(r, num(c.Skupaj), num(c.Izplacano), num(c.Kontrola))
		rows = append(rows, r)
	}
	return write(customersSheet, header, rows)
}

// DocumentsXLSX una fila por documento (cabecera y totales).
func (e *Exporter) DocumentsXLSX(kind document.Kind, docs []*entity.Document) ([]byte, error) {
	header := []any{"Številka", "Stranka", "Datum izdaje", "Rok plačila", "Datum storitve", "Status", "Opis", "Brez DDV", "DDV", "Za plačilo"}
	rows := make([][]any, 0, len(docs))
	for _, d := range docs {
		customer := ""
		if d.Customer != nil {
			customer = d.Customer.Stranka
		}
		rows = append(rows, []any{
			d.Number, customer, day(d.IssueDate), day(d.DueDate), day(d.ServiceDate),
			d.Status, d.Description, num(d.TotalWithoutVAT), num(d.VAT), num(d.TotalPayable),
		})
	}
	return write(kind.Title, header, rows)
}

func write(sheet string, header []any, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("xlsx: panes: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func num(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func day(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}
