package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sauna-pos/internal/application/account"
	"github.com/jhoicas/sauna-pos/internal/application/auth"
	"github.com/jhoicas/sauna-pos/internal/application/cash"
	"github.com/jhoicas/sauna-pos/internal/application/expense"
	"github.com/jhoicas/sauna-pos/internal/application/inventory"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/sauna-pos/internal/interfaces/http"
)

type server struct {
	t     *testing.T
	app   *fiber.App
	token string
}

// newServer arma la API completa sobre el almacén en memoria y hace login como admin.
func newServer(t *testing.T) *server {
	t.Helper()
	store, err := memory.NewSeeded("admin123")
	require.NoError(t, err)
	repos := store.Repos()

	alerter := inventory.NewAlerter(nil, nil)
	app := fiber.New()
	app.Use(apphttp.RequestLogger(nil))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 10, Issuer: testIssuer}),
		AccountUC:     account.NewAccountUseCase(store, repos, store, alerter, nil),
		ProductUC:     inventory.NewProductUseCase(store, repos, nil),
		MovementUC:    inventory.NewMovementUseCase(store, repos, alerter, nil),
		ReconcileUC:   inventory.NewReconcileUseCase(store, nil),
		Replenishment: inventory.NewReplenishmentUseCase(repos),
		ExpenseUC:     expense.NewExpenseUseCase(store, repos, nil),
		CashUC:        cash.NewCashUseCase(store, repos, nil, "efectivo", nil),
		JWTSecret:     testJWTSecret,
	})

	s := &server{t: t, app: app}
	var login struct {
		Token string `json:"token"`
	}
	s.call(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@spa.local", "password": "admin123"}, http.StatusOK, &login)
	require.NotEmpty(t, login.Token)
	s.token = login.Token
	return s
}

// call envía la petición, verifica el status y decodifica la respuesta en out (si no es nil).
func (s *server) call(method, path string, body any, wantStatus int, out any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	require.Equal(s.t, wantStatus, resp.StatusCode, "%s %s", method, path)
	if out != nil {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(out))
	}
}

type idResp struct {
	ID string `json:"id"`
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := newServer(t)
	s.token = ""
	var e map[string]string
	s.call(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@spa.local", "password": "otra"}, http.StatusUnauthorized, &e)
	assert.Equal(t, "UNAUTHORIZED", e["code"])
	s.call(http.MethodPost, "/api/auth/login", map[string]string{"email": "no-es-email", "password": "x"}, http.StatusBadRequest, &e)
	assert.Equal(t, "VALIDATION", e["code"])
}

func TestFlujoCuentaConProducto(t *testing.T) {
	s := newServer(t)

	var prod idResp
	s.call(http.MethodPost, "/api/products", map[string]any{
		"code": "TOA-01", "name": "Toalla", "purchase_price": 5000, "sale_price": 8000,
		"initial_stock": 3, "min_stock": 1,
	}, http.StatusCreated, &prod)

	var acc idResp
	s.call(http.MethodPost, "/api/accounts", map[string]any{"client_id": "cli-1"}, http.StatusCreated, &acc)

	var e map[string]string
	s.call(http.MethodPost, "/api/accounts/"+acc.ID+"/products",
		map[string]any{"product_id": prod.ID, "quantity": 5}, http.StatusConflict, &e)
	assert.Equal(t, "INSUFFICIENT_STOCK", e["code"])

	var withLine struct {
		Total    string `json:"total"`
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	s.call(http.MethodPost, "/api/accounts/"+acc.ID+"/products",
		map[string]any{"product_id": prod.ID, "quantity": 2}, http.StatusCreated, &withLine)
	assert.Equal(t, "16000", withLine.Total)
	require.Len(t, withLine.Products, 1)

	var p struct {
		StockActual int    `json:"stock_actual"`
		StockStatus string `json:"stock_status"`
	}
	s.call(http.MethodGet, "/api/products/"+prod.ID, nil, http.StatusOK, &p)
	assert.Equal(t, 1, p.StockActual)
	assert.Equal(t, "bajo", p.StockStatus)

	var kardex []map[string]any
	s.call(http.MethodGet, "/api/products/"+prod.ID+"/movements", nil, http.StatusOK, &kardex)
	require.Len(t, kardex, 2)
	assert.Equal(t, "Salida", kardex[0]["kind"])

	var closed struct {
		StatusID int `json:"status_id"`
	}
	s.call(http.MethodPost, "/api/accounts/"+acc.ID+"/close", map[string]any{
		"payments": []map[string]any{{"payment_method_id": "efectivo", "amount": 16000}},
	}, http.StatusOK, &closed)
	assert.Equal(t, 2, closed.StatusID)

	s.call(http.MethodPost, "/api/accounts/"+acc.ID+"/close", nil, http.StatusConflict, &e)
	assert.Equal(t, "CONFLICT", e["code"])

	var day struct {
		Income  string `json:"income"`
		Balance string `json:"balance"`
	}
	s.call(http.MethodGet, "/api/cash/summary/"+time.Now().Format("2006-01-02"), nil, http.StatusOK, &day)
	assert.Equal(t, "16000", day.Income)
	assert.Equal(t, "16000", day.Balance)

	var rec struct {
		Discrepancies []any `json:"discrepancies"`
	}
	s.call(http.MethodGet, "/api/inventory/reconciliation", nil, http.StatusOK, &rec)
	assert.Empty(t, rec.Discrepancies)
}

func TestCancelarCuentaDevuelveStock(t *testing.T) {
	s := newServer(t)
	var prod idResp
	s.call(http.MethodPost, "/api/products", map[string]any{
		"code": "ACE-01", "name": "Aceite", "purchase_price": 10, "sale_price": 20, "initial_stock": 4,
	}, http.StatusCreated, &prod)
	var acc idResp
	s.call(http.MethodPost, "/api/accounts", map[string]any{"client_id": "cli-2"}, http.StatusCreated, &acc)
	s.call(http.MethodPost, "/api/accounts/"+acc.ID+"/services", map[string]any{"service_id": "sauna", "quantity": 1}, http.StatusCreated, nil)
	s.call(http.MethodPost, "/api/accounts/"+acc.ID+"/products", map[string]any{"product_id": prod.ID, "quantity": 3}, http.StatusCreated, nil)

	s.call(http.MethodDelete, "/api/accounts/"+acc.ID, nil, http.StatusNoContent, nil)
	s.call(http.MethodGet, "/api/accounts/"+acc.ID, nil, http.StatusNotFound, nil)

	var p struct {
		StockActual int `json:"stock_actual"`
	}
	s.call(http.MethodGet, "/api/products/"+prod.ID, nil, http.StatusOK, &p)
	assert.Equal(t, 4, p.StockActual)
}

func TestEgresosYValidaciones(t *testing.T) {
	s := newServer(t)
	today := time.Now().Format("2006-01-02")

	var e map[string]string
	s.call(http.MethodPost, "/api/expenses", map[string]any{
		"date": time.Now(), "total_amount": 100,
		"details": []map[string]any{{"concept": "Jabón", "amount": 60, "expense_type_id": "insumos"}},
	}, http.StatusBadRequest, &e)
	assert.Equal(t, "VALIDATION", e["code"])

	var exp idResp
	s.call(http.MethodPost, "/api/expenses", map[string]any{
		"date": time.Now(), "total_amount": 100,
		"details": []map[string]any{
			{"concept": "Jabón", "amount": 60, "expense_type_id": "insumos"},
			{"concept": "Toallas", "amount": 40, "expense_type_id": "insumos"},
		},
	}, http.StatusCreated, &exp)

	var list struct {
		Items []any  `json:"items"`
		Total string `json:"total"`
	}
	s.call(http.MethodGet, "/api/expenses?from="+today+"&to="+today, nil, http.StatusOK, &list)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, "100", list.Total)

	s.call(http.MethodGet, "/api/expenses?from=ayer&to="+today, nil, http.StatusBadRequest, nil)
	s.call(http.MethodDelete, "/api/expenses/"+exp.ID, nil, http.StatusNoContent, nil)
	s.call(http.MethodDelete, "/api/expenses/"+exp.ID, nil, http.StatusNotFound, nil)
}

func TestSesionDeCaja(t *testing.T) {
	s := newServer(t)
	today := time.Now().Format("2006-01-02")

	s.call(http.MethodPost, "/api/cash/sessions", map[string]any{"business_day": today, "opening_float": 50000}, http.StatusCreated, nil)
	s.call(http.MethodPost, "/api/cash/sessions", map[string]any{"business_day": today, "opening_float": 50000}, http.StatusConflict, nil)

	var closed struct {
		Open       bool   `json:"open"`
		Difference string `json:"difference"`
	}
	s.call(http.MethodPost, "/api/cash/sessions/"+today+"/close", map[string]any{"counted_cash": 49000}, http.StatusOK, &closed)
	assert.False(t, closed.Open)
	assert.Equal(t, "-1000", closed.Difference)

	s.call(http.MethodGet, "/api/cash/sessions/31-12-2026", nil, http.StatusBadRequest, nil)
	s.call(http.MethodGet, "/api/cash/month/2026/13", nil, http.StatusBadRequest, nil)
}

func TestRolesEnRutas(t *testing.T) {
	s := newServer(t)
	s.token = tokenForRole(t, "terapeuta")[len("Bearer "):]

	s.call(http.MethodGet, "/api/products", nil, http.StatusOK, nil)
	s.call(http.MethodPost, "/api/products", map[string]any{"code": "X", "name": "X"}, http.StatusForbidden, nil)
	s.call(http.MethodGet, "/api/inventory/replenishment", nil, http.StatusForbidden, nil)
	s.call(http.MethodGet, "/api/cash/summary/2026-01-01", nil, http.StatusForbidden, nil)
}
