package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados posibles de un documento. Cada tipo admite un subconjunto (ver document.Kind).
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusProcessed = "processed"
)

// Document cabecera común a factura, presupuesto, oferta y nota de crédito.
type Document struct {
	ID              string
	Number          string
	CustomerID      string
	Customer        *CustomerSnapshot // nil si el cliente ya no existe
	IssueDate       *time.Time
	DueDate         *time.Time
	ServiceDate     *time.Time
	Description     string
	Status          string
	Items           []LineItem
	TotalWithoutVAT decimal.Decimal
	VAT             decimal.Decimal
	TotalPayable    decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LineItem línea de un documento; Total = Quantity × Price.
type LineItem struct {
	ID          string
	DocumentID  string
	Position    int
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Total       decimal.Decimal
}

// CustomerSnapshot datos del cliente que se unen a la cabecera en lecturas.
type CustomerSnapshot struct {
	ID      string
	Stranka string
	Naslov  string
	Posta   string
	Kraj    string
	Davcna  string
	Email   string
}
