package auth

import (
	"context"

	"github.com/devunionorg/skillsnap/internal/application/ports"
)

// Logout revokes a refresh token. Unknown or already revoked tokens are not
// an error: logging out always succeeds.
type Logout struct {
	tokenStore ports.TokenStore
}

func NewLogout(tokenStore ports.TokenStore) *Logout {
	return &Logout{tokenStore: tokenStore}
}

func (uc *Logout) Execute(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	_, err := uc.tokenStore.RevokeRefreshToken(ctx, hashToken(refreshToken))
	return err
}
