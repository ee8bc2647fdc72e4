package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const MinPasswordLength = 8

type RegisterUserInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

type RegisterUserResult struct {
	User *domain.User
}

type RegisterUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" || input.ConfirmPassword == "" || input.Password != input.ConfirmPassword {
		return nil, domerrors.ErrPasswordMismatch
	}
	if !emailRegex.MatchString(email) {
		return nil, domerrors.NewValidationError("email", "invalid email address")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, domerrors.NewValidationError("password", "must be at least 8 characters")
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &RegisterUserResult{User: user}, nil
}
