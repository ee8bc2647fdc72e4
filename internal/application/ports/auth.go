package ports

import (
	"context"

	"github.com/devunionorg/skillsnap/internal/domain"
)

// Session is the result of a successful login.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *domain.User
}

// AuthGateway is the identity provider as seen by the rest of the app.
type AuthGateway interface {
	Register(ctx context.Context, email, password, confirmPassword string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, refreshToken string) error
	IsLoggedIn(ctx context.Context, accessToken string) bool
	RecoverPassword(ctx context.Context, email string) error
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
}
