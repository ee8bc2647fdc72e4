package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// testPool connects to TEST_DATABASE_URL and migrates it, or skips.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func createUser(t *testing.T, users *UserRepository) *domain.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)

	u := createUser(t, users)
	got, err := users.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	assert.ErrorIs(t, users.Create(ctx, u), domerrors.ErrUserExists)

	missing, err := users.GetByID(ctx, domain.NewUserID(uuid.New()))
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, users.UpdatePassword(ctx, u.ID, "new-hash"))
	got, err = users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}

func TestProfileRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	profiles := NewProfileRepository(pool)

	u := createUser(t, users)
	p := sampleProfile()
	p.ID = u.ID
	p.Username = "u" + uuid.NewString()[:8]

	ok, err := profiles.IsUsernameAvailable(ctx, p.Username)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, profiles.SaveUserInfo(ctx, p))
	require.NoError(t, profiles.UpdateHasProfileFlag(ctx, u.ID, true))

	has, err := profiles.CheckUserHasProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, has)

	name, err := profiles.FetchUsernameByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Username, name)

	got, err := profiles.FetchUserInfo(ctx, p.Username)
	require.NoError(t, err)
	assert.True(t, p.Equal(*got))

	// createdAt is kept from the stored document
	edited := p.Clone()
	edited.Bio = "updated"
	edited.CreatedAt = time.Now()
	require.NoError(t, profiles.SaveUserInfo(ctx, edited))
	got, err = profiles.FetchUserProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Bio)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

	renamed := p.Clone()
	renamed.Username = p.Username + "x"
	assert.ErrorIs(t, profiles.SaveUserInfo(ctx, renamed), domerrors.ErrUsernameImmutable)

	other := createUser(t, users)
	clash := sampleProfile()
	clash.ID = other.ID
	clash.Username = p.Username
	assert.ErrorIs(t, profiles.SaveUserInfo(ctx, clash), domerrors.ErrUsernameTaken)

	require.NoError(t, profiles.DeleteUserProfile(ctx, u.ID, p.Username))
	_, err = profiles.FetchUserInfo(ctx, p.Username)
	var nf *domerrors.NotFoundError
	assert.True(t, errors.As(err, &nf))
	ok, err = profiles.IsUsernameAvailable(ctx, p.Username)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenAndResetStores(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	u := createUser(t, NewUserRepository(pool))
	tokens := NewTokenStore(pool)
	resets := NewPasswordResetRepository(pool)

	hash := uuid.NewString()
	require.NoError(t, tokens.StoreRefreshToken(ctx, u.ID, hash, time.Now().Add(time.Hour)))
	info, err := tokens.GetRefreshToken(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, u.ID, info.UserID)
	assert.Nil(t, info.RevokedAt)

	require.NoError(t, tokens.RevokeAllForUser(ctx, u.ID))
	info, err = tokens.GetRefreshToken(ctx, hash)
	require.NoError(t, err)
	assert.NotNil(t, info.RevokedAt)
	revoked, err := tokens.RevokeRefreshToken(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, revoked)

	other := uuid.NewString()
	require.NoError(t, tokens.StoreRefreshToken(ctx, u.ID, other, time.Now().Add(time.Hour)))
	revoked, err = tokens.RevokeRefreshToken(ctx, other)
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = tokens.RevokeRefreshToken(ctx, other)
	require.NoError(t, err)
	assert.False(t, revoked)

	resetHash := uuid.NewString()
	require.NoError(t, resets.Create(ctx, u.Email, resetHash, time.Now().Add(time.Hour)))
	email, err := resets.GetByTokenHash(ctx, resetHash)
	require.NoError(t, err)
	assert.Equal(t, u.Email, email)
	used, err := resets.MarkUsed(ctx, resetHash)
	require.NoError(t, err)
	assert.True(t, used)
	used, err = resets.MarkUsed(ctx, resetHash)
	require.NoError(t, err)
	assert.False(t, used)
	_, err = resets.GetByTokenHash(ctx, resetHash)
	assert.Error(t, err)
}

func TestPurgeExpired(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	u := createUser(t, NewUserRepository(pool))
	tokens := NewTokenStore(pool)

	expired := uuid.NewString()
	live := uuid.NewString()
	require.NoError(t, tokens.StoreRefreshToken(ctx, u.ID, expired, time.Now().Add(-48*time.Hour)))
	require.NoError(t, tokens.StoreRefreshToken(ctx, u.ID, live, time.Now().Add(time.Hour)))

	n, err := tokens.PurgeExpired(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	_, err = tokens.GetRefreshToken(ctx, expired)
	assert.Error(t, err)
	_, err = tokens.GetRefreshToken(ctx, live)
	assert.NoError(t, err)
}
