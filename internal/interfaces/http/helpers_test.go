package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/racunko-api/internal/application/auth"
	"github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/internal/domain/document"
	"github.com/jhoicas/racunko-api/internal/domain/entity"
	"github.com/jhoicas/racunko-api/internal/infrastructure/eslog"
	"github.com/jhoicas/racunko-api/internal/infrastructure/memory"
	"github.com/jhoicas/racunko-api/internal/infrastructure/pdf"
	"github.com/jhoicas/racunko-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/racunko-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/racunko-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsername  = "admin"
	testPassword  = "geslo123"
	testIssuer    = "racunko-test"
	testExpMin    = 60
)

type testServer struct {
	app   *fiber.App
	token string
	store *memory.Store
}

// newTestServer arma la API completa sobre el store en memoria.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()

	authUC, err := auth.NewAuthUseCase(
		auth.Credentials{Username: testUsername, Password: testPassword},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	)
	require.NoError(t, err)

	sheets := xlsx.NewExporter()
	deps := apphttp.RouterDeps{
		AuthUC:     authUC,
		CustomerUC: billing.NewCustomerUseCase(store.Customers(), sheets, nil),
	}
	for _, k := range document.Kinds() {
		deps.Documents = append(deps.Documents, billing.NewDocumentUseCase(k, billing.DocumentDeps{
			Repo:      store.Documents(k),
			Customers: store.Customers(),
			Tx:        store,
			PDF:       pdf.NewMarotoPDFGenerator(),
			Sheets:    sheets,
			ESLOG:     eslog.NewBuilder(),
			Issuer:    entity.Issuer{Name: "Računko s.p.", IBAN: "SI56 0110 0100 0000 123"},
		}))
	}

	app := fiber.New()
	apphttp.Router(app, deps)

	tok, _, err := pkgjwt.Generate(testJWTSecret, testUsername, testIssuer, testExpMin)
	require.NoError(t, err)
	return &testServer{app: app, token: tok, store: store}
}

// do lanza la petición con el token del servidor y devuelve status y body.
func (s *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// doJSON igual que do pero decodifica el body como objeto.
func (s *testServer) doJSON(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := s.do(t, method, path, body)
	var m map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	}
	return status, m
}

// createCustomer crea un cliente y devuelve su id.
func (s *testServer) createCustomer(t *testing.T, body map[string]any) string {
	t.Helper()
	status, out := s.doJSON(t, http.MethodPost, "/api/customers", body)
	require.Equal(t, http.StatusCreated, status, out)
	return out["id"].(string)
}
