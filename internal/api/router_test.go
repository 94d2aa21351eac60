package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/forensic-wacc/internal/api/handlers"
	"github.com/wonny/forensic-wacc/internal/casefile"
	"github.com/wonny/forensic-wacc/internal/wacc"
	"github.com/wonny/forensic-wacc/pkg/config"
	"github.com/wonny/forensic-wacc/pkg/logger"
)

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	log := logger.Nop()
	solver := wacc.NewSolver(wacc.Options{StrictTaxRate: cfg.Solver.StrictTaxRate})
	h := handlers.NewWACCHandler(solver, casefile.NewRunner(solver, log), cfg.Solver.PercentDecimals, log)
	return NewRouter(h, cfg, log)
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, config.Default())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDPropagation(t *testing.T) {
	router := newTestRouter(t, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "case-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "case-42", rec.Header().Get(RequestIDHeader))
}

func TestCalculateRoute(t *testing.T) {
	router := newTestRouter(t, config.Default())

	rec := post(t, router, "/api/wacc/calculate",
		`{"equity_value":12000,"debt_value":2000,"cost_of_equity":0.10,"cost_of_debt":0.067,"tax_rate":0.25}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp handlers.CalculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 0.09289, resp.Result.WACC, 1e-5)
	assert.Equal(t, "9.289286%", resp.WACCPercent)
}

func TestSolveRoute(t *testing.T) {
	router := newTestRouter(t, config.Default())

	rec := post(t, router, "/api/wacc/solve",
		`{"wacc":0.09289,"debt_value":2000,"cost_of_equity":0.10,"cost_of_debt":0.067,"tax_rate":0.25}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp handlers.SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "equity_value", string(resp.Result.Missing))
	assert.InEpsilon(t, 12000.0, resp.Result.Value, 1e-3)
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, config.Default())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wacc/solve", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}
	router := newTestRouter(t, cfg)

	body := `{"equity_value":1,"debt_value":1,"cost_of_equity":0.1,"cost_of_debt":0.05,"tax_rate":0.2}`
	assert.Equal(t, http.StatusOK, post(t, router, "/api/wacc/calculate", body).Code)
	assert.Equal(t, http.StatusOK, post(t, router, "/api/wacc/calculate", body).Code)

	rec := post(t, router, "/api/wacc/calculate", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health is outside the limited subrouter
	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = config.RateLimitConfig{Enabled: false}
	router := newTestRouter(t, cfg)

	body := `{"equity_value":1,"debt_value":1,"cost_of_equity":0.1,"cost_of_debt":0.05,"tax_rate":0.2}`
	for i := 0; i < 100; i++ {
		require.Equal(t, http.StatusOK, post(t, router, "/api/wacc/calculate", body).Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
