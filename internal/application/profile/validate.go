package profile

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_.-]{3,32}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, "status", func(fl validator.FieldLevel) bool {
		return domain.Status(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("profile: register validation " + tag + ": " + err.Error())
	}
}

// NormalizeUsername trims and lowercases a username as typed by a user.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks the stored username format.
func ValidateUsername(username string) error {
	if err := validate.Var(username, "username"); err != nil {
		return domerrors.NewValidationError("username", "must be 3-32 characters of a-z, 0-9, '_', '.' or '-'")
	}
	return nil
}

type profileRules struct {
	Username string `validate:"username"`
	Name     string `validate:"max=120"`
	Status   string `validate:"status"`
	Email    string `validate:"required,email,max=254"`
	Avatar   string `validate:"omitempty,url"`
	Resume   string `validate:"omitempty,url"`
}

// Validate checks the fields of p that must hold before it is persisted.
func Validate(p domain.Profile) error {
	err := validate.Struct(profileRules{
		Username: p.Username,
		Name:     p.Name,
		Status:   string(p.Status),
		Email:    p.Contact.Email,
		Avatar:   p.Avatar,
		Resume:   deref(p.Resume),
	})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domerrors.NewValidationError(strings.ToLower(fe.Field()), "failed "+fe.Tag()+" check")
	}
	return domerrors.NewValidationError("", err.Error())
}
