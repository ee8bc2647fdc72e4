package auth

import (
	"context"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// ResetPasswordInput is the token from the reset link and the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordResult returns nothing on success.
type ResetPasswordResult struct{}

// ResetPassword looks up the reset token, consumes it, updates the password
// and signs the user out everywhere. Only one caller can consume a token.
type ResetPassword struct {
	resetStore ports.PasswordResetStore
	userRepo   ports.UserRepository
	hasher     ports.PasswordHasher
	tokenStore ports.TokenStore
}

// NewResetPassword builds the use case.
func NewResetPassword(resetStore ports.PasswordResetStore, userRepo ports.UserRepository, hasher ports.PasswordHasher, tokenStore ports.TokenStore) *ResetPassword {
	return &ResetPassword{
		resetStore: resetStore,
		userRepo:   userRepo,
		hasher:     hasher,
		tokenStore: tokenStore,
	}
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	if len(input.NewPassword) < MinPasswordLength {
		return nil, domerrors.NewValidationError("password", "must be at least 8 characters")
	}
	hash := hashToken(input.Token)
	email, err := uc.resetStore.GetByTokenHash(ctx, hash)
	if err != nil {
		return nil, domerrors.ErrPasswordResetInvalid
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, domerrors.ErrPasswordResetInvalid
	}
	newHash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	consumed, err := uc.resetStore.MarkUsed(ctx, hash)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, domerrors.ErrPasswordResetInvalid
	}
	if err := uc.userRepo.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return nil, err
	}
	if uc.tokenStore != nil {
		if err := uc.tokenStore.RevokeAllForUser(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	return &ResetPasswordResult{}, nil
}
