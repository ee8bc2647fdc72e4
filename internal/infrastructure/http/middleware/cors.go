package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a middleware that sets Access-Control-* headers and answers
// preflight requests. With no allowed origins, CORS is disabled.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return noopMiddleware
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           86400,
	})
}
