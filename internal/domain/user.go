package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is the identity assigned by the auth gateway. Profiles share it.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// ParseUserID parses the canonical string form.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID{UUID: id}, nil
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// IsZero reports whether the id was never set.
func (u UserID) IsZero() bool { return u.UUID == uuid.Nil }

// User is an account known to the auth gateway.
type User struct {
	ID           UserID
	Email        string
	PasswordHash string
	HasProfile   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
