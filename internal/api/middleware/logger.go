package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestObserver receives every finished request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Logger returns a middleware that logs each request with zap and reports it
// to observer when observer is not nil. Requests are labelled by their chi
// route pattern so metrics stay bounded; unmatched requests use "unmatched".
func Logger(logger *zap.Logger, observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			elapsed := time.Since(start)
			route := routePattern(r)

			// Strip CR/LF from user-supplied values before logging.
			sanitize := strings.NewReplacer("\n", "", "\r", "").Replace

			fields := []zap.Field{
				zap.String("method", sanitize(r.Method)),
				zap.String("path", sanitize(r.URL.Path)),
				zap.String("route", route),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", elapsed),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			}

			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				logger.Error("request completed", fields...)
			case wrapped.statusCode >= http.StatusBadRequest:
				logger.Warn("request completed", fields...)
			default:
				logger.Info("request completed", fields...)
			}

			if observer != nil {
				observer.ObserveRequest(r.Method, route, wrapped.statusCode, elapsed)
			}
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
