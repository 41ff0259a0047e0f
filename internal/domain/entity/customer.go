package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StageCodes etapas del proceso de desembolso, en el orden en que se muestran y persisten.
var StageCodes = [StageCount]string{"VLG", "ODL", "ZAH1", "ZAH2", "ZAH3", "ZAH4", "ZAH5"}

// StageCount número de etapas de desembolso por cliente.
const StageCount = 7

// Stage una etapa de desembolso: importe base, importe con DDV, cobrado, estado y si ya se emitió factura.
type Stage struct {
	Amount        decimal.Decimal
	WithVAT       decimal.Decimal // <etapa>_z_DDV, derivado de Amount
	Received      decimal.Decimal // <etapa>_prejeto
	Status        string
	InvoiceIssued bool
}

// Customer representa una stranka con sus datos de contacto y el seguimiento de desembolsos.
type Customer struct {
	ID        string
	Stranka   string // nombre / razón social
	Naslov    string // dirección
	Posta     string // código postal
	Kraj      string // localidad
	Davcna    string // número de identificación fiscal (davčna številka)
	Telefon   string
	Email     string
	Opombe    string
	Stages    [StageCount]Stage
	Skupaj    decimal.Decimal // Σ Amount
	Izplacano decimal.Decimal // Σ Received
	Kontrola  decimal.Decimal // Skupaj - Izplacano
	CreatedAt time.Time
	UpdatedAt time.Time
}
