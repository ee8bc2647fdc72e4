package auth

import (
	"context"
	"time"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain/errors"
)

type RefreshInput struct {
	RefreshToken string
}

type RefreshResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Refresh rotates a refresh token. Presenting a token that was already
// rotated revokes every refresh token of its user.
type Refresh struct {
	issuer     ports.TokenIssuer
	tokenStore ports.TokenStore
	accessExp  int64
	refreshExp int64
}

func NewRefresh(issuer ports.TokenIssuer, tokenStore ports.TokenStore, accessExp, refreshExp int64) *Refresh {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	if refreshExp <= 0 {
		refreshExp = DefaultRefreshTokenExpiry
	}
	return &Refresh{
		issuer:     issuer,
		tokenStore: tokenStore,
		accessExp:  accessExp,
		refreshExp: refreshExp,
	}
}

func (uc *Refresh) Execute(ctx context.Context, input RefreshInput) (*RefreshResult, error) {
	if input.RefreshToken == "" {
		return nil, errors.ErrInvalidToken
	}
	tokenHash := hashToken(input.RefreshToken)
	info, err := uc.tokenStore.GetRefreshToken(ctx, tokenHash)
	if err != nil || info == nil {
		return nil, errors.ErrInvalidToken
	}
	if info.RevokedAt != nil {
		_ = uc.tokenStore.RevokeAllForUser(ctx, info.UserID)
		return nil, errors.ErrInvalidToken
	}
	if time.Now().After(info.ExpiresAt) {
		return nil, errors.ErrInvalidToken
	}
	revoked, err := uc.tokenStore.RevokeRefreshToken(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if !revoked {
		// Rotated concurrently by another request.
		_ = uc.tokenStore.RevokeAllForUser(ctx, info.UserID)
		return nil, errors.ErrInvalidToken
	}
	accessToken, refreshToken, err := issuePair(ctx, uc.issuer, uc.tokenStore, info.UserID, uc.accessExp, uc.refreshExp)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    uc.accessExp,
	}, nil
}
