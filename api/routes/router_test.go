package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paoquentinho/storefront/internal/app"
	"github.com/paoquentinho/storefront/pkg/config"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/schedule"
)

type testServer struct {
	handler http.Handler
	sched   *schedule.Manual
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Env: config.AppEnvDev, CORSOrigins: []string{"http://localhost:5173"}},
		Storage: config.StorageConfig{Backend: config.StorageBackendMemory},
		Orders:  config.OrdersConfig{PreparingDelay: 2 * time.Second, ReadyDelay: 5 * time.Minute, EstimatedMinutes: 5},
	}
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	sched := schedule.NewManual(time.Date(2026, 8, 3, 7, 30, 0, 0, time.UTC))
	a, err := app.New(context.Background(), cfg, logg, app.WithScheduler(sched), app.WithClock(sched.Now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return &testServer{handler: NewRouter(cfg, logg, a), sched: sched}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	s.handler.ServeHTTP(resp, req)
	return resp
}

func data(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/health/ready", "").Code)

	resp := srv.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "go_goroutines")
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	resp := httptest.NewRecorder()
	srv.handler.ServeHTTP(resp, req)
	assert.Equal(t, "abc-123", resp.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.Header.Set("X-Request-Id", "not a token!")
	resp = httptest.NewRecorder()
	srv.handler.ServeHTTP(resp, req)
	assert.NotEqual(t, "not a token!", resp.Header().Get("X-Request-Id"))
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	srv.handler.ServeHTTP(resp, req)
	assert.Equal(t, "http://localhost:5173", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestStorefrontFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodPost, "/api/v1/checkout", `{"paymentMethod":"pix"}`)
	require.Equal(t, http.StatusUnauthorized, resp.Code, "checkout needs a logged-in user")

	resp = srv.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"maria@email.com","senha":"errada"}`)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = srv.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"maria@email.com","senha":"123456"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "1", data(t, resp)["id"])

	resp = srv.do(t, http.MethodPost, "/api/v1/cart/items", `{"productId":"cappuccino","quantity":2}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = srv.do(t, http.MethodPost, "/api/v1/cart/items", `{"productId":"croissant","quantity":1}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = srv.do(t, http.MethodGet, "/api/v1/cart", "")
	cart := data(t, resp)
	assert.Equal(t, float64(3), cart["totalItems"])
	assert.Equal(t, "17.5", cart["totalPrice"])

	resp = srv.do(t, http.MethodPost, "/api/v1/checkout", `{"paymentMethod":"cartao"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	result := data(t, resp)
	order := result["order"].(map[string]any)
	orderID := order["id"].(string)
	assert.Equal(t, false, result["hasCustomCake"])
	assert.Equal(t, float64(5), result["estimatedTime"])

	resp = srv.do(t, http.MethodGet, "/api/v1/cart", "")
	assert.Equal(t, float64(0), data(t, resp)["totalItems"], "checkout clears the cart")

	srv.sched.Advance(2 * time.Second)
	resp = srv.do(t, http.MethodGet, "/api/v1/orders/"+orderID, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Em Preparo", data(t, resp)["status"])

	resp = srv.do(t, http.MethodGet, "/api/v1/orders", "")
	var list struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)

	resp = srv.do(t, http.MethodPost, "/api/v1/orders/"+orderID+"/status", `{"status":"Recebido"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = srv.do(t, http.MethodPatch, "/api/v1/profile", `{"telefone":"(11) 91111-2222"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "(11) 91111-2222", data(t, resp)["telefone"])

	resp = srv.do(t, http.MethodPost, "/api/v1/auth/logout", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(t, http.MethodGet, "/api/v1/profile", "").Code)
}

func TestRegisterConflict(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodPost, "/api/v1/auth/register",
		`{"nome":"Outra Maria","telefone":"(11) 90000-0000","email":"maria@email.com","senha":"segredo"}`)
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = srv.do(t, http.MethodPost, "/api/v1/auth/register",
		`{"nome":"Ana","telefone":"(11) 90000-0000","email":"ana@email.com","senha":"segredo"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "ana@email.com", data(t, resp)["email"])
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/v1/pizzas", "").Code)
}
