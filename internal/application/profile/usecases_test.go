package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

func newUserID() domain.UserID { return domain.NewUserID(uuid.New()) }

func TestSetupProfile(t *testing.T) {
	store := newFakeStore()
	enq := &fakeEnqueuer{}
	uc := NewSetupProfile(store, enq, zerolog.Nop())
	id := newUserID()

	res, err := uc.Execute(context.Background(), SetupProfileInput{
		UserID: id, Username: " Maria_DS", Name: "Maria Dos Santos", Email: "maria_ds@gmail.com",
	})
	require.NoError(t, err)

	p := res.Profile
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "maria_ds", p.Username)
	assert.Equal(t, domain.StatusMember, p.Status)
	assert.True(t, p.Active && p.Visible)
	assert.False(t, p.CreatedAt.IsZero())
	assert.True(t, store.flags[id])
	require.Len(t, store.saved, 1)
	assert.Equal(t, []string{ports.EventProfileCreated}, enq.types())
}

func TestSetupProfileUsernameTaken(t *testing.T) {
	store := newFakeStore()
	store.put(testProfile())
	uc := NewSetupProfile(store, nil, zerolog.Nop())

	_, err := uc.Execute(context.Background(), SetupProfileInput{
		UserID: newUserID(), Username: "maria_ds", Name: "Other", Email: "other@x.io",
	})

	assert.ErrorIs(t, err, domerrors.ErrUsernameTaken)
	assert.False(t, store.called("SaveUserInfo"))
}

func TestSetupProfileAlreadyExists(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	store.put(p)
	uc := NewSetupProfile(store, nil, zerolog.Nop())

	_, err := uc.Execute(context.Background(), SetupProfileInput{
		UserID: p.ID, Username: "maria_new", Name: "Maria", Email: "maria_ds@gmail.com",
	})

	assert.ErrorIs(t, err, domerrors.ErrProfileExists)
	assert.False(t, store.called("SaveUserInfo"))
}

func TestSetupProfileRepairsMissingFlag(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	store.put(p)
	store.flags[p.ID] = false
	uc := NewSetupProfile(store, nil, zerolog.Nop())

	_, err := uc.Execute(context.Background(), SetupProfileInput{
		UserID: p.ID, Username: "maria_ds", Name: "Maria", Email: "maria_ds@gmail.com",
	})

	assert.ErrorIs(t, err, domerrors.ErrProfileExists)
	assert.True(t, store.flags[p.ID])
	assert.False(t, store.called("SaveUserInfo"))
}

func TestSetupProfileAfterDeleteFlagFailure(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	store.put(p)
	ctx := context.Background()

	store.failOn["UpdateHasProfileFlag"] = errBackend
	err := NewDeleteProfile(store, nil, zerolog.Nop()).Execute(ctx, p.ID)
	require.ErrorIs(t, err, errBackend)
	require.True(t, store.flags[p.ID])
	delete(store.failOn, "UpdateHasProfileFlag")

	res, err := NewSetupProfile(store, nil, zerolog.Nop()).Execute(ctx, SetupProfileInput{
		UserID: p.ID, Username: "maria_ds", Name: "Maria", Email: "maria_ds@gmail.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria_ds", res.Profile.Username)
	assert.True(t, store.flags[p.ID])

	got, err := NewGetProfile(store).ByUserID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestDeleteProfileRetryClearsStaleFlag(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	store.put(p)
	uc := NewDeleteProfile(store, nil, zerolog.Nop())
	ctx := context.Background()

	store.failOn["UpdateHasProfileFlag"] = errBackend
	require.ErrorIs(t, uc.Execute(ctx, p.ID), errBackend)
	delete(store.failOn, "UpdateHasProfileFlag")

	require.NoError(t, uc.Execute(ctx, p.ID))
	assert.False(t, store.flags[p.ID])
	assert.True(t, domerrors.IsNotFound(uc.Execute(ctx, p.ID)))
}

func TestSetupProfileInvalidInput(t *testing.T) {
	store := newFakeStore()
	uc := NewSetupProfile(store, nil, zerolog.Nop())

	_, err := uc.Execute(context.Background(), SetupProfileInput{UserID: newUserID(), Username: "x", Email: "a@b.io"})
	assertValidationError(t, err)
	assert.Empty(t, store.calls)

	_, err = uc.Execute(context.Background(), SetupProfileInput{UserID: newUserID(), Username: "valid_name", Email: "nope"})
	assertValidationError(t, err)
	assert.False(t, store.called("SaveUserInfo"))
}

func TestSetupProfileFlagFailure(t *testing.T) {
	store := newFakeStore()
	store.failOn["UpdateHasProfileFlag"] = errBackend
	uc := NewSetupProfile(store, nil, zerolog.Nop())

	_, err := uc.Execute(context.Background(), SetupProfileInput{
		UserID: newUserID(), Username: "maria_ds", Name: "Maria", Email: "maria_ds@gmail.com",
	})

	assert.ErrorIs(t, err, errBackend)
	assert.Len(t, store.saved, 1)
}

func TestGetProfileByUsername(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	store.put(p)
	uc := NewGetProfile(store)

	got, err := uc.ByUsername(context.Background(), "Maria_DS", domain.UserID{})
	require.NoError(t, err)
	assert.True(t, p.Equal(*got))

	_, err = uc.ByUsername(context.Background(), "nobody", domain.UserID{})
	assert.True(t, domerrors.IsNotFound(err))
}

func TestGetProfileHiddenOnlyForOwner(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	p.Visible = false
	store.put(p)
	uc := NewGetProfile(store)

	_, err := uc.ByUsername(context.Background(), "maria_ds", newUserID())
	assert.True(t, domerrors.IsNotFound(err))

	got, err := uc.ByUsername(context.Background(), "maria_ds", p.ID)
	require.NoError(t, err)
	assert.False(t, got.Visible)
}

func TestGetProfileByUserID(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	store.put(p)
	uc := NewGetProfile(store)

	got, err := uc.ByUserID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria_ds", got.Username)

	_, err = uc.ByUserID(context.Background(), newUserID())
	assert.True(t, domerrors.IsNotFound(err))
}

func TestEditProfile(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	store.put(p)
	media := &fakeMedia{url: "https://x/avatar.jpg"}
	uc := NewEditProfile(store, NewSaveProfile(store, media, nil, zerolog.Nop()), zerolog.Nop())

	res, err := uc.Execute(context.Background(), EditProfileInput{
		UserID: p.ID,
		Edits: []Edit{
			{Op: OpSet, Field: FieldBio, Value: "Designer and illustrator"},
			{Op: OpAddProject, Project: &ProjectInput{Title: "Banking app"}},
		},
		Image: []byte{0xff},
	})
	require.NoError(t, err)

	require.Len(t, res.Keys, 1)
	assert.Equal(t, "Banking app", res.Profile.Projects[res.Keys[0]].Title)
	assert.Equal(t, "https://x/avatar.jpg", res.Profile.Avatar)
	stored := store.profiles["maria_ds"]
	assert.Equal(t, "Designer and illustrator", stored.Bio)
	assert.True(t, p.CreatedAt.Equal(stored.CreatedAt))
}

func TestEditProfileMalformedEditSavesNothing(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	store.put(p)
	uc := NewEditProfile(store, NewSaveProfile(store, &fakeMedia{}, nil, zerolog.Nop()), zerolog.Nop())

	_, err := uc.Execute(context.Background(), EditProfileInput{UserID: p.ID, Edits: []Edit{{Op: OpSet, Field: "id", Value: "x"}}})

	assertValidationError(t, err)
	assert.False(t, store.called("SaveUserInfo"))
}

func TestDeleteProfileFreesUsername(t *testing.T) {
	store := newFakeStore()
	p := testProfile()
	store.put(p)
	enq := &fakeEnqueuer{}
	uc := NewDeleteProfile(store, enq, zerolog.Nop())

	require.NoError(t, uc.Execute(context.Background(), p.ID))

	assert.False(t, store.flags[p.ID])
	ok, err := NewCheckUsername(store).Execute(context.Background(), "maria_ds")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{ports.EventProfileDeleted}, enq.types())
}

func TestDeleteProfileUnknownUser(t *testing.T) {
	store := newFakeStore()
	uc := NewDeleteProfile(store, nil, zerolog.Nop())

	err := uc.Execute(context.Background(), newUserID())

	assert.True(t, domerrors.IsNotFound(err))
	assert.False(t, store.called("DeleteUserProfile"))
}

func TestCheckUsername(t *testing.T) {
	store := newFakeStore()
	store.put(testProfile())
	uc := NewCheckUsername(store)

	ok, err := uc.Execute(context.Background(), "maria_ds")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.Execute(context.Background(), "joao")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = uc.Execute(context.Background(), "no")
	assertValidationError(t, err)
}
