package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/devunionorg/skillsnap/internal/application/ports"
)

// ForgotPasswordInput for requesting a password reset email.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordResult returns nothing; email is sent async (or noop if no user).
type ForgotPasswordResult struct{}

// ForgotPassword creates a reset token, stores its hash, and enqueues sending the email.
// Does not reveal whether the email exists.
type ForgotPassword struct {
	resetStore ports.PasswordResetStore
	userRepo   ports.UserRepository
	enqueuer   ports.TaskEnqueuer
	baseURL    string
	expirySecs int64
}

// NewForgotPassword builds the use case.
func NewForgotPassword(resetStore ports.PasswordResetStore, userRepo ports.UserRepository, enqueuer ports.TaskEnqueuer, baseURL string, expirySecs int64) *ForgotPassword {
	if expirySecs <= 0 {
		expirySecs = DefaultResetTokenExpiry
	}
	return &ForgotPassword{
		resetStore: resetStore,
		userRepo:   userRepo,
		enqueuer:   enqueuer,
		baseURL:    baseURL,
		expirySecs: expirySecs,
	}
}

// Execute creates the reset token and enqueues the email. If email is not found, we still return success.
func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return &ForgotPasswordResult{}, nil
	}
	token, err := newOpaqueToken()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(time.Duration(uc.expirySecs) * time.Second)
	if err := uc.resetStore.Create(ctx, user.Email, hashToken(token), expiresAt); err != nil {
		return nil, err
	}
	resetURL := fmt.Sprintf("%s?token=%s", uc.baseURL, url.QueryEscape(token))
	_ = uc.enqueuer.EnqueueSendPasswordReset(ctx, user.Email, resetURL)
	return &ForgotPasswordResult{}, nil
}
