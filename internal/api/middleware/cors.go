package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS lets the dashboard frontend on allowedOrigins call the API.
// Content-Disposition is exposed so the browser can name portfolio
// and fund CSV downloads, X-Request-Id so the UI can quote it in error reports.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Type", "Content-Disposition", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
