// Package db holds the row types the postgres repositories scan into.
package db

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	HasProfile   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// Profile is one row of the profiles table. Doc is the JSON document.
type Profile struct {
	UserID    uuid.UUID
	Username  string
	Doc       []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}
