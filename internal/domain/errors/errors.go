package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrPasswordResetInvalid = errors.New("invalid or expired password reset token")
	ErrAccountLocked        = errors.New("account temporarily locked")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrUsernameImmutable    = errors.New("username cannot be changed")
	ErrProfileExists        = errors.New("profile already exists for this user")
	ErrSaveInProgress       = errors.New("a save is already in progress")
	ErrSessionNotReady      = errors.New("profile is still loading")
	ErrNotFound             = errors.New("not found")
)

// ErrPasswordMismatch is returned by registration when a field is empty or
// the two passwords differ.
var ErrPasswordMismatch = &ValidationError{Field: "password", Msg: "password mismatch or empty field"}

// ValidationError is input rejected locally, before any gateway is called.
type ValidationError struct {
	Field string
	Msg   string
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// NotFoundError reports a referenced username, user or profile that does not exist.
type NotFoundError struct {
	Kind string
	Key  string
}

// NewNotFoundError builds a NotFoundError.
func NewNotFoundError(kind, key string) *NotFoundError {
	return &NotFoundError{Kind: kind, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// GatewayError is a failure reported by the auth, profile store or media
// gateway. The underlying message is kept verbatim.
type GatewayError struct {
	Gateway string
	Op      string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Gateway, e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// AccountLockedError carries the remaining cooldown of a locked account.
type AccountLockedError struct {
	RetryAfterSeconds int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("%s, retry after %ds", ErrAccountLocked.Error(), e.RetryAfterSeconds)
}

// Is makes errors.Is(err, ErrAccountLocked) true.
func (e *AccountLockedError) Is(target error) bool {
	return target == ErrAccountLocked
}

var domainSentinels = []error{
	ErrUserExists,
	ErrInvalidCredentials,
	ErrInvalidToken,
	ErrPasswordResetInvalid,
	ErrAccountLocked,
	ErrUsernameTaken,
	ErrUsernameImmutable,
	ErrProfileExists,
	ErrNotFound,
}

// FromGateway wraps err as a GatewayError unless it already carries a domain
// meaning (validation, not-found or one of the sentinels), which is passed
// through untouched. nil stays nil.
func FromGateway(gateway, op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return err
	}
	var ge *GatewayError
	if errors.As(err, &ge) {
		return err
	}
	for _, s := range domainSentinels {
		if errors.Is(err, s) {
			return err
		}
	}
	return &GatewayError{Gateway: gateway, Op: op, Err: err}
}

// IsNotFound reports whether err means a referenced entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
