package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
)

// AuthValidator validates the JWT and sets the user in context (see UserIDFromContext).
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := BearerToken(r)
		if !ok {
			writeErr(w, http.StatusUnauthorized, "missing or invalid authorization")
			return
		}
		sub, err := m.issuer.ValidateAccessToken(tokenString)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid token")
			return
		}
		userID, err := domain.ParseUserID(sub)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := WithAuth(r.Context(), userID, tokenString)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tok, tok != ""
}

func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode(code)})
}

func errCode(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusBadRequest:
		return "unsupported_api_version"
	default:
		return "internal_error"
	}
}

// Optional sets the user in context when a valid bearer token is present
// and otherwise lets the request through anonymously.
func (m *AuthValidator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenString, ok := BearerToken(r); ok {
			if sub, err := m.issuer.ValidateAccessToken(tokenString); err == nil {
				if userID, err := domain.ParseUserID(sub); err == nil {
					r = r.WithContext(WithAuth(r.Context(), userID, tokenString))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
