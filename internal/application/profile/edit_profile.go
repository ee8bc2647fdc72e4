package profile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
)

type EditProfileInput struct {
	UserID domain.UserID
	Edits  []Edit
	Image  []byte
}

type EditProfileResult struct {
	Profile domain.Profile
	// Keys generated by add edits, in request order.
	Keys []string
}

// EditProfile loads the owner's profile into an EditSession, applies the
// edits and the optional avatar, then saves.
type EditProfile struct {
	store ports.ProfileStore
	save  *SaveProfile
	log   zerolog.Logger
}

func NewEditProfile(store ports.ProfileStore, save *SaveProfile, log zerolog.Logger) *EditProfile {
	return &EditProfile{store: store, save: save, log: log}
}

func (uc *EditProfile) Execute(ctx context.Context, input EditProfileInput) (*EditProfileResult, error) {
	session := NewEditSession(uc.store, uc.save, uc.log)
	if err := session.Load(ctx, input.UserID); err != nil {
		return nil, err
	}
	before := session.Profile()
	keys, err := session.ApplyEdits(input.Edits)
	if err != nil {
		return nil, err
	}
	if len(input.Image) > 0 {
		if err := session.SetPendingImage(input.Image); err != nil {
			return nil, err
		}
	}
	saved, err := session.Save(ctx)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("user_id", input.UserID.String()).
		Strs("fields", fieldNames(ChangedFields(before, saved))).
		Int("added", len(keys)).
		Msg("profile edited")
	return &EditProfileResult{Profile: saved, Keys: keys}, nil
}

func fieldNames(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
