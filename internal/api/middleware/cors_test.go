package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/middleware"
)

// TestNewCORS tests the cross-origin policy of the API.
//
// WHY: The dashboard runs on its own origin and reads the download file name
// of CSV exports from Content-Disposition, which browsers hide unless exposed.
func TestNewCORS(t *testing.T) {
	const origin = "http://localhost:5173"
	handler := middleware.NewCORS([]string{origin}).Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="Core.csv"`)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("exposes the export file name to allowed origins", func(t *testing.T) {
		// Setup
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/x/export", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()

		// Execute
		handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
	})

	t.Run("answers preflight for uploads", func(t *testing.T) {
		// Setup
		req := httptest.NewRequest(http.MethodOptions, "/api/import/single-fund", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		w := httptest.NewRecorder()

		// Execute
		handler.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("ignores other origins", func(t *testing.T) {
		// Setup
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()

		// Execute
		handler.ServeHTTP(w, req)

		// Assert
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
