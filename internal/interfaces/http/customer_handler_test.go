package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCliente_DerivadosRecalculados(t *testing.T) {
	s := newTestServer(t)

	status, out := s.doJSON(t, http.MethodPost, "/api/customers", map[string]any{
		"Stranka":      "Novak",
		"VLG":          1000,
		"VLG_z_DDV":    1, // se ignora
		"VLG_prejeto":  400,
		"ZAH1":         12.34,
		"ZAH1_status":  "v obdelavi",
		"ZAH1_racun":   true,
		"SKUPAJ":       5, // se ignora
	})
	require.Equal(t, http.StatusCreated, status, out)
	assert.EqualValues(t, 1220, out["VLG_z_DDV"])
	assert.EqualValues(t, 15.05, out["ZAH1_z_DDV"])
	assert.EqualValues(t, 1012.34, out["SKUPAJ"])
	assert.EqualValues(t, 400, out["Izplacano"])
	assert.EqualValues(t, 612.34, out["KONTROLA"])
	assert.Equal(t, "v obdelavi", out["ZAH1_status"])
	assert.Equal(t, true, out["ZAH1_racun"])
	assert.EqualValues(t, 0, out["ZAH5"])
	id := out["id"].(string)

	status, out = s.doJSON(t, http.MethodPut, "/api/customers/"+id, map[string]any{"Stranka": "Novak", "ODL": 100})
	require.Equal(t, http.StatusOK, status, out)
	assert.EqualValues(t, 0, out["VLG"], "PUT reemplaza todas las columnas")
	assert.EqualValues(t, 122, out["ODL_z_DDV"])
	assert.EqualValues(t, 100, out["KONTROLA"])
}

func TestCliente_CRUD(t *testing.T) {
	s := newTestServer(t)

	status, out := s.doJSON(t, http.MethodPost, "/api/customers", map[string]any{"email": "x@y.si"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, out["message"], "Stranka")

	status, _ = s.doJSON(t, http.MethodPost, "/api/customers", map[string]any{"Stranka": "X", "email": "ni-email"})
	assert.Equal(t, http.StatusBadRequest, status)

	id := s.createCustomer(t, map[string]any{"Stranka": "Zeta d.o.o.", "Kraj": "Maribor"})
	s.createCustomer(t, map[string]any{"Stranka": "Alfa d.o.o."})

	_, raw := s.do(t, http.MethodGet, "/api/customers", nil)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Alfa d.o.o.", list[0]["Stranka"])

	_, raw = s.do(t, http.MethodGet, "/api/customers?q=zeta", nil)
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)

	status, out = s.doJSON(t, http.MethodGet, "/api/customers/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Maribor", out["Kraj"])

	status, _ = s.do(t, http.MethodDelete, "/api/customers/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.do(t, http.MethodGet, "/api/customers/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := s.do(t, http.MethodGet, "/api/customers/export", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PK", string(body[:2]))
}

func TestCliente_BorradoDejaDocumentoHuerfano(t *testing.T) {
	s := newTestServer(t)
	customerID := s.createCustomer(t, map[string]any{"Stranka": "Acme d.o.o."})
	_, inv := s.doJSON(t, http.MethodPost, "/api/invoices", invoiceBody(customerID, "2024-001"))

	status, _ := s.do(t, http.MethodDelete, "/api/customers/"+customerID, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, out := s.doJSON(t, http.MethodGet, "/api/invoices/"+inv["id"].(string), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, out["customer"])
	assert.Equal(t, customerID, out["customerId"])
}
