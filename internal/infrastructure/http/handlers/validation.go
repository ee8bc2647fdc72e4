package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
	MaxRefreshToken   = 1024
	MaxEditsPerPatch  = 50
)

// SanitizeEmail trims and lowercases email; returns empty if invalid length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizePassword returns empty if the password is over max length.
// Passwords are not trimmed: surrounding spaces are part of the secret.
func SanitizePassword(password string) string {
	if len(password) > MaxPasswordLength {
		return ""
	}
	return password
}

// TruncateRefreshToken truncates token to MaxRefreshToken.
func TruncateRefreshToken(tok string) string {
	if len(tok) > MaxRefreshToken {
		return tok[:MaxRefreshToken]
	}
	return tok
}

// validationMessage renders the first failed rule of a validator error as
// "field: failed <tag> check".
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return strings.ToLower(fe.Field()) + ": failed " + fe.Tag() + " check"
	}
	return err.Error()
}
