package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/racunko-api/internal/domain/entity"
)

// StageFields columnas de una etapa de desembolso. En JSON se aplanan como
// <ETAPA>, <ETAPA>_z_DDV, <ETAPA>_prejeto, <ETAPA>_status y <ETAPA>_racun.
type StageFields struct {
	Amount        decimal.Decimal
	WithVAT       decimal.Decimal
	Received      decimal.Decimal
	Status        string
	InvoiceIssued bool
}

// CustomerRequest body para POST y PUT /api/customers (columna por columna).
// Los campos derivados (_z_DDV, SKUPAJ, Izplacano, KONTROLA) se aceptan pero se recalculan.
type CustomerRequest struct {
	Stranka string                         `json:"Stranka" validate:"required,max=255"`
	Naslov  string                         `json:"Naslov" validate:"max=255"`
	Posta   string                         `json:"Posta" validate:"max=20"`
	Kraj    string                         `json:"Kraj" validate:"max=100"`
	Davcna  string                         `json:"Davcna" validate:"max=20"`
	Telefon string                         `json:"Telefon" validate:"max=50"`
	Email   string                         `json:"email" validate:"omitempty,email"`
	Opombe  string                         `json:"Opombe"`
	Stages  [entity.StageCount]StageFields `json:"-"`
}

// UnmarshalJSON lee los campos fijos y las columnas planas de cada etapa.
func (r *CustomerRequest) UnmarshalJSON(b []byte) error {
	type plain CustomerRequest
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for i, code := range entity.StageCodes {
		st := &p.Stages[i]
		if err := decodeField(raw, code, &st.Amount); err != nil {
			return err
		}
		if err := decodeField(raw, code+"_z_DDV", &st.WithVAT); err != nil {
			return err
		}
		if err := decodeField(raw, code+"_prejeto", &st.Received); err != nil {
			return err
		}
		if err := decodeField(raw, code+"_status", &st.Status); err != nil {
			return err
		}
		if err := decodeField(raw, code+"_racun", &st.InvoiceIssued); err != nil {
			return err
		}
	}
	*r = CustomerRequest(p)
	return nil
}

func decodeField(raw map[string]json.RawMessage, key string, dst any) error {
	v, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("campo %s: %w", key, err)
	}
	return nil
}

// CustomerResponse cliente con todas sus columnas.
type CustomerResponse struct {
	ID        string
	Stranka   string
	Naslov    string
	Posta     string
	Kraj      string
	Davcna    string
	Telefon   string
	Email     string
	Opombe    string
	Stages    [entity.StageCount]StageFields
	Skupaj    decimal.Decimal
	Izplacano decimal.Decimal
	Kontrola  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarshalJSON aplana las etapas con los mismos nombres de columna que acepta CustomerRequest.
func (r CustomerResponse) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"id":        r.ID,
		"Stranka":   r.Stranka,
		"Naslov":    r.Naslov,
		"Posta":     r.Posta,
		"Kraj":      r.Kraj,
		"Davcna":    r.Davcna,
		"Telefon":   r.Telefon,
		"email":     r.Email,
		"Opombe":    r.Opombe,
		"SKUPAJ":    r.Skupaj,
		"Izplacano": r.Izplacano,
		"KONTROLA":  r.Kontrola,
		"createdAt": r.CreatedAt,
		"updatedAt": r.UpdatedAt,
	}
	for i, code := range entity.StageCodes {
		st := r.Stages[i]
		m[code] = st.Amount
		m[code+"_z_DDV"] = st.WithVAT
		m[code+"_prejeto"] = st.Received
		m[code+"_status"] = st.Status
		m[code+"_racun"] = st.InvoiceIssued
	}
	return json.Marshal(m)
}
