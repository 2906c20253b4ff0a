package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/config"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/metrics"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	services := Services{
		System:      testutil.NewTestSystemService(t, db),
		Fund:        testutil.NewTestFundService(t, db),
		Cashflow:    testutil.NewTestCashflowService(t, db),
		GeneralFund: testutil.NewTestGeneralFundService(t, db),
		Portfolio:   testutil.NewTestPortfolioService(t, db),
		Import:      testutil.NewTestImportService(t, db),
		Dashboard:   testutil.NewTestDashboardService(t, db),
	}
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}

	return NewRouter(services, metrics.NewCollector(), zap.NewNop(), cfg)
}

// TestNewRouter tests that routes are mounted with their middleware.
//
// WHY: Handler tests call handlers directly. Only the router proves that
// static routes win over {uuid} routes and that ids are validated first.
func TestNewRouter(t *testing.T) {
	router := newTestRouter(t)

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("serves health", func(t *testing.T) {
		w := serve(http.MethodGet, "/api/system/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("static fund routes are not treated as ids", func(t *testing.T) {
		for _, path := range []string{"/api/fund/types", "/api/fund/scenarios", "/api/fund/metrics"} {
			w := serve(http.MethodGet, path, "")
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		for _, path := range []string{
			"/api/fund/not-a-uuid",
			"/api/general-fund/not-a-uuid/cashflows",
			"/api/portfolio/not-a-uuid/waterfall",
			"/api/cashflow/fund/not-a-uuid",
		} {
			w := serve(http.MethodGet, path, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, path)
		}
	})

	t.Run("creates and reads back a fund", func(t *testing.T) {
		w := serve(http.MethodPost, "/api/fund", `{"name":"Acme","vintage":2020,"commitmentAmount":100,"fundType":"Buyout"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = serve(http.MethodGet, "/api/fund", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Acme"`)
	})

	t.Run("unknown routes return 404", func(t *testing.T) {
		w := serve(http.MethodGet, "/api/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("exposes request metrics by route pattern", func(t *testing.T) {
		serve(http.MethodGet, "/api/dashboard", "")

		w := serve(http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `fund_cashflow_http_requests_total{method="GET",route="/api/dashboard",status="200"}`)
	})
}
