package profile

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

type SetupProfileInput struct {
	UserID   domain.UserID
	Username string
	Name     string
	Email    string
}

type SetupProfileResult struct {
	Profile domain.Profile
}

// SetupProfile creates the first profile of an account and flags the
// account as having one.
type SetupProfile struct {
	store    ports.ProfileStore
	enqueuer ports.TaskEnqueuer
	log      zerolog.Logger
}

func NewSetupProfile(store ports.ProfileStore, enqueuer ports.TaskEnqueuer, log zerolog.Logger) *SetupProfile {
	return &SetupProfile{store: store, enqueuer: enqueuer, log: log}
}

func (uc *SetupProfile) Execute(ctx context.Context, input SetupProfileInput) (*SetupProfileResult, error) {
	username := NormalizeUsername(input.Username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := uc.reconcileFlag(ctx, input.UserID); err != nil {
		return nil, err
	}
	available, err := uc.store.IsUsernameAvailable(ctx, username)
	if err != nil {
		return nil, domerrors.FromGateway(gatewayStore, "check username", err)
	}
	if !available {
		return nil, domerrors.ErrUsernameTaken
	}
	p := domain.NewProfile(input.UserID, username, input.Name, input.Email, time.Now())
	if err := Validate(p); err != nil {
		return nil, err
	}
	if err := uc.store.SaveUserInfo(ctx, p); err != nil {
		return nil, domerrors.FromGateway(gatewayStore, "save user info", err)
	}
	if err := uc.store.UpdateHasProfileFlag(ctx, input.UserID, true); err != nil {
		return nil, domerrors.FromGateway(gatewayStore, "update has profile flag", err)
	}
	publish(ctx, uc.enqueuer, uc.log, ports.EventProfileCreated, p)
	return &SetupProfileResult{Profile: p}, nil
}

// reconcileFlag brings has_profile in line with the stored profile before a
// setup. A profile saved by an earlier setup whose flag update failed gets
// its flag set and ErrProfileExists. A flag left true by a delete whose flag
// update failed is cleared so the setup can go ahead.
func (uc *SetupProfile) reconcileFlag(ctx context.Context, userID domain.UserID) error {
	hasProfile, err := uc.store.CheckUserHasProfile(ctx, userID)
	if err != nil {
		return domerrors.FromGateway(gatewayStore, "check user has profile", err)
	}
	existing, err := uc.store.FetchUserProfile(ctx, userID)
	if err != nil && !domerrors.IsNotFound(err) {
		return domerrors.FromGateway(gatewayStore, "fetch user profile", err)
	}
	if err == nil && existing != nil {
		if !hasProfile {
			uc.log.Warn().Str("user_id", userID.String()).Msg("profile present without has_profile flag, repairing")
			if err := uc.store.UpdateHasProfileFlag(ctx, userID, true); err != nil {
				return domerrors.FromGateway(gatewayStore, "update has profile flag", err)
			}
		}
		return domerrors.ErrProfileExists
	}
	if hasProfile {
		uc.log.Warn().Str("user_id", userID.String()).Msg("has_profile flag set without a profile, clearing")
		if err := uc.store.UpdateHasProfileFlag(ctx, userID, false); err != nil {
			return domerrors.FromGateway(gatewayStore, "update has profile flag", err)
		}
	}
	return nil
}
