package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/api/middleware"
)

type recordedRequest struct {
	method string
	route  string
	status int
}

type fakeObserver struct {
	requests []recordedRequest
}

func (f *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

func TestLogger(t *testing.T) {
	setup := func() (http.Handler, *observer.ObservedLogs, *fakeObserver) {
		core, logs := observer.New(zapcore.InfoLevel)
		obs := &fakeObserver{}

		r := chi.NewRouter()
		r.Use(middleware.Logger(zap.New(core), obs))
		r.Get("/api/fund/{uuid}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
		return r, logs, obs
	}

	t.Run("labels requests with the route pattern", func(t *testing.T) {
		// Setup
		handler, logs, obs := setup()

		// Execute
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/fund/abc", nil))

		// Assert
		require.Len(t, obs.requests, 1)
		assert.Equal(t, recordedRequest{http.MethodGet, "/api/fund/{uuid}", http.StatusNotFound}, obs.requests[0])

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		assert.Equal(t, "/api/fund/abc", entry.ContextMap()["path"])
	})

	t.Run("implicit 200 is logged at info", func(t *testing.T) {
		// Setup
		handler, logs, obs := setup()

		// Execute
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

		// Assert
		require.Len(t, obs.requests, 1)
		assert.Equal(t, http.StatusOK, obs.requests[0].status)
		assert.Equal(t, zapcore.InfoLevel, logs.All()[0].Level)
	})

	t.Run("works without an observer", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		r := chi.NewRouter()
		r.Use(middleware.Logger(zap.New(core), nil))
		r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, 1, logs.Len())
	})
}
