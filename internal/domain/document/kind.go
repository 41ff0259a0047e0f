// Package document modela lo común a los cuatro tipos de documento (factura, presupuesto,
// oferta y nota de crédito): configuración por tipo, ciclo de estados y cálculo de importes.
package document

import "github.com/jhoicas/racunko-api/internal/domain/entity"

// Kind configuración de un tipo de documento. Todo el CRUD, estados y exportaciones se
// parametrizan con este valor en lugar de duplicar código por tipo.
type Kind struct {
	Code         string   // identificador interno: invoice, quote, offer, credit_note
	Path         string   // segmento de URL: invoices, quotes, offers, credit-notes
	Title        string   // título impreso en PDF y correo
	FilePrefix   string   // prefijo del nombre de archivo exportado
	HeaderTable  string   // tabla de cabeceras
	ItemsTable   string   // tabla de líneas (FK document_id)
	NumberField  string   // alias JSON del número (invoiceNumber, ...)
	Statuses     []string // lista permitida; el primero es el estado inicial
	ESLOGDocType string   // código e-SLOG (380/381); vacío = sin exportación e-SLOG
}

var (
	Invoice = Kind{
		Code:         "invoice",
		Path:         "invoices",
		Title:        "Račun",
		FilePrefix:   "racun",
		HeaderTable:  "invoices",
		ItemsTable:   "invoice_items",
		NumberField:  "invoiceNumber",
		Statuses:     []string{entity.StatusDraft, entity.StatusSent, entity.StatusPaid, entity.StatusCancelled},
		ESLOGDocType: "380",
	}
	Quote = Kind{
		Code:        "quote",
		Path:        "quotes",
		Title:       "Predračun",
		FilePrefix:  "predracun",
		HeaderTable: "quotes",
		ItemsTable:  "quote_items",
		NumberField: "quoteNumber",
		Statuses:    []string{entity.StatusDraft, entity.StatusSent, entity.StatusAccepted, entity.StatusRejected},
	}
	Offer = Kind{
		Code:        "offer",
		Path:        "offers",
		Title:       "Ponudba",
		FilePrefix:  "ponudba",
		HeaderTable: "offers",
		ItemsTable:  "offer_items",
		NumberField: "offerNumber",
		Statuses:    []string{entity.StatusDraft, entity.StatusSent, entity.StatusAccepted, entity.StatusRejected},
	}
	CreditNote = Kind{
		Code:         "credit_note",
		Path:         "credit-notes",
		Title:        "Dobropis",
		FilePrefix:   "dobropis",
		HeaderTable:  "credit_notes",
		ItemsTable:   "credit_note_items",
		NumberField:  "creditNoteNumber",
		Statuses:     []string{entity.StatusDraft, entity.StatusSent, entity.StatusProcessed, entity.StatusCancelled},
		ESLOGDocType: "381",
	}
)

// Kinds devuelve los tipos en el orden en que se registran las rutas.
func Kinds() []Kind {
	return []Kind{Invoice, Quote, Offer, CreditNote}
}

// KindByCode busca un tipo por su código interno (payload de tareas, CLI).
func KindByCode(code string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Code == code {
			return k, true
		}
	}
	return Kind{}, false
}

// InitialStatus estado con el que nace todo documento.
func (k Kind) InitialStatus() string {
	return k.Statuses[0]
}

// SupportsESLOG informa si el tipo puede exportarse como e-SLOG.
func (k Kind) SupportsESLOG() bool {
	return k.ESLOGDocType != ""
}
