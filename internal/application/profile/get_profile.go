package profile

import (
	"context"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// GetProfile reads profiles for their owner and for the public.
type GetProfile struct {
	store ports.ProfileStore
}

func NewGetProfile(store ports.ProfileStore) *GetProfile {
	return &GetProfile{store: store}
}

// ByUsername returns the profile stored under username. Hidden or inactive
// profiles are reported as not found unless viewer owns them. A zero viewer
// is an anonymous caller.
func (uc *GetProfile) ByUsername(ctx context.Context, username string, viewer domain.UserID) (*domain.Profile, error) {
	username = NormalizeUsername(username)
	if err := ValidateUsername(username); err != nil {
		return nil, domerrors.NewNotFoundError("profile", username)
	}
	p, err := uc.store.FetchUserInfo(ctx, username)
	if err != nil {
		return nil, domerrors.FromGateway(gatewayStore, "fetch user info", err)
	}
	if p == nil {
		return nil, domerrors.NewNotFoundError("profile", username)
	}
	if p.ID != viewer && (!p.Visible || !p.Active) {
		return nil, domerrors.NewNotFoundError("profile", username)
	}
	return p, nil
}

// ByUserID returns the owner's own profile.
func (uc *GetProfile) ByUserID(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	p, err := uc.store.FetchUserProfile(ctx, userID)
	if err != nil {
		return nil, domerrors.FromGateway(gatewayStore, "fetch user profile", err)
	}
	if p == nil {
		return nil, domerrors.NewNotFoundError("profile", userID.String())
	}
	return p, nil
}
