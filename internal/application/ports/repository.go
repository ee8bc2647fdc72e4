package ports

import (
	"context"
	"time"

	"github.com/devunionorg/skillsnap/internal/domain"
)

// UserRepository defines persistence for auth accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns nil, nil when no account uses the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByID returns nil, nil when the account does not exist.
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error
}

// RefreshTokenInfo is what the token store knows about one refresh token.
type RefreshTokenInfo struct {
	UserID    domain.UserID
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// TokenStore holds refresh tokens by hash.
type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshTokenInfo, error)
	// RevokeRefreshToken reports whether this call revoked a live token.
	RevokeRefreshToken(ctx context.Context, tokenHash string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID domain.UserID) error
}

// PasswordResetStore holds single-use password reset tokens by hash.
type PasswordResetStore interface {
	Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) error
	// GetByTokenHash returns the email of a live, unused token.
	GetByTokenHash(ctx context.Context, tokenHash string) (string, error)
	// MarkUsed consumes a live, unused token and reports whether this call did.
	MarkUsed(ctx context.Context, tokenHash string) (bool, error)
}

// TokenPurger deletes stored tokens that can no longer be used.
type TokenPurger interface {
	// PurgeExpired removes tokens that expired, or were revoked or used, before the cutoff.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}
