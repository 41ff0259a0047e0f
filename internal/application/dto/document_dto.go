package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItemRequest línea enviada por el cliente. Total se ignora: el servidor lo recalcula.
type DocumentItemRequest struct {
	Description string           `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Price       decimal.Decimal  `json:"price"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// DocumentRequest body para POST y PUT /api/<tipo>s.
// El número puede venir como "number" o con el alias del tipo (invoiceNumber, quoteNumber, ...).
type DocumentRequest struct {
	Number           string                `json:"number" validate:"max=50"`
	InvoiceNumber    string                `json:"invoiceNumber" validate:"max=50"`
	QuoteNumber      string                `json:"quoteNumber" validate:"max=50"`
	OfferNumber      string                `json:"offerNumber" validate:"max=50"`
	CreditNoteNumber string                `json:"creditNoteNumber" validate:"max=50"`
	CustomerID       string                `json:"customerId" validate:"required,uuid"`
	IssueDate        string                `json:"issueDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate          string                `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	ServiceDate      string                `json:"serviceDate" validate:"omitempty,datetime=2006-01-02"`
	Description      string                `json:"description" validate:"max=2000"`
	Items            []DocumentItemRequest `json:"items" validate:"dive"`
}

// ResolveNumber devuelve el número indicado con el alias del tipo o, en su defecto, "number".
func (r DocumentRequest) ResolveNumber(numberField string) string {
	var alias string
	switch numberField {
	case "invoiceNumber":
		alias = r.InvoiceNumber
	case "quoteNumber":
		alias = r.QuoteNumber
	case "offerNumber":
		alias = r.OfferNumber
	case "creditNoteNumber":
		alias = r.CreditNoteNumber
	}
	if s := strings.TrimSpace(alias); s != "" {
		return s
	}
	return strings.TrimSpace(r.Number)
}

// UpdateStatusRequest body para PUT /api/<tipo>s/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SendRequest body para POST /api/<tipo>s/:id/send. Sin "to" se usa el email del cliente.
type SendRequest struct {
	To string `json:"to" validate:"omitempty,email"`
}

// SendResponse mensaje prellenado y estado resultante.
type SendResponse struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto"`
	Status  string `json:"status"`
	Queued  bool   `json:"queued"`
}

// CustomerSnapshotResponse datos del cliente unidos al documento.
type CustomerSnapshotResponse struct {
	ID      string `json:"id"`
	Stranka string `json:"Stranka"`
	Naslov  string `json:"Naslov,omitempty"`
	Posta   string `json:"Posta,omitempty"`
	Kraj    string `json:"Kraj,omitempty"`
	Davcna  string `json:"Davcna,omitempty"`
	Email   string `json:"email,omitempty"`
}

// DocumentItemResponse línea en la respuesta.
type DocumentItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// DocumentResponse documento completo. Solo se rellena el alias de número del propio tipo.
type DocumentResponse struct {
	ID               string                    `json:"id"`
	Kind             string                    `json:"kind"`
	Number           string                    `json:"number"`
	InvoiceNumber    string                    `json:"invoiceNumber,omitempty"`
	QuoteNumber      string                    `json:"quoteNumber,omitempty"`
	OfferNumber      string                    `json:"offerNumber,omitempty"`
	CreditNoteNumber string                    `json:"creditNoteNumber,omitempty"`
	CustomerID       string                    `json:"customerId"`
	Customer         *CustomerSnapshotResponse `json:"customer"`
	IssueDate        string                    `json:"issueDate,omitempty"`
	DueDate          string                    `json:"dueDate,omitempty"`
	ServiceDate      string                    `json:"serviceDate,omitempty"`
	Description      string                    `json:"description"`
	Status           string                    `json:"status"`
	Items            []DocumentItemResponse    `json:"items"`
	TotalWithoutVAT  decimal.Decimal           `json:"totalWithoutVat"`
	VAT              decimal.Decimal           `json:"vat"`
	TotalPayable     decimal.Decimal           `json:"totalPayable"`
	CreatedAt        time.Time                 `json:"createdAt"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
}

// SetNumberAlias rellena el alias JSON del número según el tipo.
func (r *DocumentResponse) SetNumberAlias(numberField string) {
	switch numberField {
	case "invoiceNumber":
		r.InvoiceNumber = r.Number
	case "quoteNumber":
		r.QuoteNumber = r.Number
	case "offerNumber":
		r.OfferNumber = r.Number
	case "creditNoteNumber":
		r.CreditNoteNumber = r.Number
	}
}
