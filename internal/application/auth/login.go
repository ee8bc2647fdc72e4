package auth

import (
	"context"
	"strings"
	"time"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *domain.User
}

type Login struct {
	users      ports.UserRepository
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
	tokenStore ports.TokenStore
	lockout    ports.LoginLockoutStore
	accessExp  int64
	refreshExp int64
}

// NewLogin builds the use case. lockout may be nil to disable lockout.
func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, tokenStore ports.TokenStore, lockout ports.LoginLockoutStore, accessExp, refreshExp int64) *Login {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	if refreshExp <= 0 {
		refreshExp = DefaultRefreshTokenExpiry
	}
	return &Login{
		users:      users,
		hasher:     hasher,
		issuer:     issuer,
		tokenStore: tokenStore,
		lockout:    lockout,
		accessExp:  accessExp,
		refreshExp: refreshExp,
	}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domerrors.ErrInvalidCredentials
	}
	if uc.lockout != nil {
		if locked, retryAfter := uc.lockout.IsLocked(ctx, email); locked {
			return nil, &domerrors.AccountLockedError{RetryAfterSeconds: retryAfter}
		}
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		if uc.lockout != nil {
			uc.lockout.RecordFailure(ctx, email)
		}
		return nil, domerrors.ErrInvalidCredentials
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, email)
	}
	uc.upgradeHash(ctx, user, input.Password)
	accessToken, refreshToken, err := issuePair(ctx, uc.issuer, uc.tokenStore, user.ID, uc.accessExp, uc.refreshExp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    uc.accessExp,
		User:         user,
	}, nil
}

type rehasher interface {
	NeedsRehash(encoded string) bool
}

// upgradeHash re-hashes the password when the hasher's params were raised
// since it was stored. Failures leave the old hash in place.
func (uc *Login) upgradeHash(ctx context.Context, user *domain.User, password string) {
	r, ok := uc.hasher.(rehasher)
	if !ok || !r.NeedsRehash(user.PasswordHash) {
		return
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, hash); err == nil {
		user.PasswordHash = hash
	}
}

// issuePair signs an access token and stores a new refresh token.
func issuePair(ctx context.Context, issuer ports.TokenIssuer, store ports.TokenStore, userID domain.UserID, accessExp, refreshExp int64) (string, string, error) {
	accessToken, err := issuer.IssueAccessToken(userID.String(), accessExp)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := newOpaqueToken()
	if err != nil {
		return "", "", err
	}
	expiresAt := time.Now().Add(time.Duration(refreshExp) * time.Second)
	if err := store.StoreRefreshToken(ctx, userID, hashToken(refreshToken), expiresAt); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
