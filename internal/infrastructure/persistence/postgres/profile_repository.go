package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

const (
	usernameAvailableSQL = `SELECT NOT EXISTS (SELECT 1 FROM profiles WHERE username = $1)`
	usernameByUserIDSQL  = `SELECT username FROM profiles WHERE user_id = $1`
	profileByUsernameSQL = `SELECT doc FROM profiles WHERE username = $1`
	profileByUserIDSQL   = `SELECT doc FROM profiles WHERE user_id = $1`
	deleteProfileSQL     = `DELETE FROM profiles WHERE user_id = $1 AND username = $2`
	setHasProfileSQL     = `UPDATE users SET has_profile = $2, updated_at = NOW() WHERE id = $1`
	getHasProfileSQL     = `SELECT has_profile FROM users WHERE id = $1`

	// The stored createdAt wins over the incoming one. A row whose username
	// differs is left alone and nothing is returned.
	saveProfileSQL = `
INSERT INTO profiles (user_id, username, doc, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (user_id) DO UPDATE
SET doc = jsonb_set(EXCLUDED.doc, '{createdAt}', COALESCE(profiles.doc->'createdAt', EXCLUDED.doc->'createdAt')),
    updated_at = NOW()
WHERE profiles.username = EXCLUDED.username
RETURNING user_id`
)

// ProfileRepository implements ports.ProfileStore on a JSONB document per
// user. Username uniqueness comes from the profiles_username_key constraint.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	var available bool
	if err := r.pool.QueryRow(ctx, usernameAvailableSQL, username).Scan(&available); err != nil {
		return false, err
	}
	return available, nil
}

func (r *ProfileRepository) FetchUsernameByUserID(ctx context.Context, userID domain.UserID) (string, error) {
	var username string
	err := r.pool.QueryRow(ctx, usernameByUserIDSQL, userID.UUID).Scan(&username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domerrors.NewNotFoundError("username", userID.String())
		}
		return "", err
	}
	return username, nil
}

func (r *ProfileRepository) FetchUserInfo(ctx context.Context, username string) (*domain.Profile, error) {
	return r.fetch(ctx, profileByUsernameSQL, username, username)
}

func (r *ProfileRepository) FetchUserProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	return r.fetch(ctx, profileByUserIDSQL, userID.UUID, userID.String())
}

func (r *ProfileRepository) fetch(ctx context.Context, sql string, arg any, key string) (*domain.Profile, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, sql, arg).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domerrors.NewNotFoundError("profile", key)
		}
		return nil, err
	}
	p, err := decodeProfile(doc)
	if err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", key, err)
	}
	return p, nil
}

func (r *ProfileRepository) SaveUserInfo(ctx context.Context, profile domain.Profile) error {
	doc, err := encodeProfile(profile)
	if err != nil {
		return err
	}
	var id uuid.UUID
	err = r.pool.QueryRow(ctx, saveProfileSQL, profile.ID.UUID, profile.Username, doc, profile.CreatedAt).Scan(&id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return domerrors.ErrUsernameImmutable
	case isUniqueViolation(err, "profiles_username_key"):
		return domerrors.ErrUsernameTaken
	}
	return err
}

func (r *ProfileRepository) DeleteUserProfile(ctx context.Context, userID domain.UserID, username string) error {
	tag, err := r.pool.Exec(ctx, deleteProfileSQL, userID.UUID, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.NewNotFoundError("profile", username)
	}
	return nil
}

func (r *ProfileRepository) UpdateHasProfileFlag(ctx context.Context, userID domain.UserID, hasProfile bool) error {
	tag, err := r.pool.Exec(ctx, setHasProfileSQL, userID.UUID, hasProfile)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.NewNotFoundError("user", userID.String())
	}
	return nil
}

func (r *ProfileRepository) CheckUserHasProfile(ctx context.Context, userID domain.UserID) (bool, error) {
	var has bool
	err := r.pool.QueryRow(ctx, getHasProfileSQL, userID.UUID).Scan(&has)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domerrors.NewNotFoundError("user", userID.String())
		}
		return false, err
	}
	return has, nil
}

var _ ports.ProfileStore = (*ProfileRepository)(nil)
