package middleware

import (
	"context"

	"github.com/devunionorg/skillsnap/internal/domain"
)

type contextKey string

const (
	userIDContextKey      contextKey = "user_id"
	accessTokenContextKey contextKey = "access_token"
)

// WithAuth injects the authenticated user and the bearer token into the context.
func WithAuth(ctx context.Context, userID domain.UserID, accessToken string) context.Context {
	ctx = context.WithValue(ctx, userIDContextKey, userID)
	return context.WithValue(ctx, accessTokenContextKey, accessToken)
}

// UserIDFromContext returns the authenticated user, or ok=false.
func UserIDFromContext(ctx context.Context) (domain.UserID, bool) {
	id, ok := ctx.Value(userIDContextKey).(domain.UserID)
	return id, ok && !id.IsZero()
}

// AccessTokenFromContext returns the bearer token that authenticated the request.
func AccessTokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(accessTokenContextKey).(string)
	return tok
}
