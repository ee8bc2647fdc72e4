package auth

import (
	"context"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// CurrentUser resolves an access token to the account it was issued for.
type CurrentUser struct {
	issuer ports.TokenIssuer
	users  ports.UserRepository
}

func NewCurrentUser(issuer ports.TokenIssuer, users ports.UserRepository) *CurrentUser {
	return &CurrentUser{issuer: issuer, users: users}
}

func (uc *CurrentUser) Execute(ctx context.Context, accessToken string) (*domain.User, error) {
	sub, err := uc.issuer.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	id, err := domain.ParseUserID(sub)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	return uc.ByID(ctx, id)
}

// ByID loads an account whose token was already validated.
func (uc *CurrentUser) ByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.NewNotFoundError("user", id.String())
	}
	return user, nil
}
