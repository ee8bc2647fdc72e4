package ports

import (
	"context"

	"github.com/devunionorg/skillsnap/internal/domain"
)

// ProfileStore is the document store gateway holding profiles.
// Lookups of absent usernames, users or profiles return a *errors.NotFoundError.
type ProfileStore interface {
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	FetchUsernameByUserID(ctx context.Context, userID domain.UserID) (string, error)
	// FetchUserInfo loads a profile by username.
	FetchUserInfo(ctx context.Context, username string) (*domain.Profile, error)
	// FetchUserProfile loads a profile by the owner's user id.
	FetchUserProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error)
	// SaveUserInfo creates or replaces the whole profile document. Last writer wins.
	SaveUserInfo(ctx context.Context, profile domain.Profile) error
	DeleteUserProfile(ctx context.Context, userID domain.UserID, username string) error
	UpdateHasProfileFlag(ctx context.Context, userID domain.UserID, hasProfile bool) error
	CheckUserHasProfile(ctx context.Context, userID domain.UserID) (bool, error)
}

// MediaStore is the object storage gateway.
type MediaStore interface {
	// UploadImage stores raw image bytes and returns the public URL.
	UploadImage(ctx context.Context, image []byte) (string, error)
}
