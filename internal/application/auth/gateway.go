package auth

import (
	"context"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
)

// Gateway is the auth capability set backed by the use cases of this package.
type Gateway struct {
	register       *RegisterUser
	login          *Login
	logout         *Logout
	forgotPassword *ForgotPassword
	currentUser    *CurrentUser
}

var _ ports.AuthGateway = (*Gateway)(nil)

func NewGateway(register *RegisterUser, login *Login, logout *Logout, forgotPassword *ForgotPassword, currentUser *CurrentUser) *Gateway {
	return &Gateway{
		register:       register,
		login:          login,
		logout:         logout,
		forgotPassword: forgotPassword,
		currentUser:    currentUser,
	}
}

func (g *Gateway) Register(ctx context.Context, email, password, confirmPassword string) (*domain.User, error) {
	res, err := g.register.Execute(ctx, RegisterUserInput{Email: email, Password: password, ConfirmPassword: confirmPassword})
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	res, err := g.login.Execute(ctx, LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return &ports.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
		User:         res.User,
	}, nil
}

func (g *Gateway) Logout(ctx context.Context, refreshToken string) error {
	return g.logout.Execute(ctx, refreshToken)
}

func (g *Gateway) IsLoggedIn(ctx context.Context, accessToken string) bool {
	if accessToken == "" {
		return false
	}
	_, err := g.currentUser.Execute(ctx, accessToken)
	return err == nil
}

func (g *Gateway) RecoverPassword(ctx context.Context, email string) error {
	_, err := g.forgotPassword.Execute(ctx, ForgotPasswordInput{Email: email})
	return err
}

func (g *Gateway) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	return g.currentUser.Execute(ctx, accessToken)
}
