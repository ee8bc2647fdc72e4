package profile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// DeleteProfile removes the owner's profile, which frees its username.
// Running it again after a failed flag update clears the flag.
type DeleteProfile struct {
	store    ports.ProfileStore
	enqueuer ports.TaskEnqueuer
	log      zerolog.Logger
}

func NewDeleteProfile(store ports.ProfileStore, enqueuer ports.TaskEnqueuer, log zerolog.Logger) *DeleteProfile {
	return &DeleteProfile{store: store, enqueuer: enqueuer, log: log}
}

func (uc *DeleteProfile) Execute(ctx context.Context, userID domain.UserID) error {
	username, err := uc.store.FetchUsernameByUserID(ctx, userID)
	if domerrors.IsNotFound(err) {
		return uc.clearStaleFlag(ctx, userID, err)
	}
	if err != nil {
		return domerrors.FromGateway(gatewayStore, "fetch username", err)
	}
	if err := uc.store.DeleteUserProfile(ctx, userID, username); err != nil {
		return domerrors.FromGateway(gatewayStore, "delete user profile", err)
	}
	if err := uc.store.UpdateHasProfileFlag(ctx, userID, false); err != nil {
		return domerrors.FromGateway(gatewayStore, "update has profile flag", err)
	}
	publish(ctx, uc.enqueuer, uc.log, ports.EventProfileDeleted, domain.Profile{ID: userID, Username: username})
	return nil
}

// clearStaleFlag finishes a delete whose profile is already gone. notFound is
// returned when there was nothing left to clear.
func (uc *DeleteProfile) clearStaleFlag(ctx context.Context, userID domain.UserID, notFound error) error {
	hasProfile, err := uc.store.CheckUserHasProfile(ctx, userID)
	if err != nil {
		return domerrors.FromGateway(gatewayStore, "check user has profile", err)
	}
	if !hasProfile {
		return notFound
	}
	if err := uc.store.UpdateHasProfileFlag(ctx, userID, false); err != nil {
		return domerrors.FromGateway(gatewayStore, "update has profile flag", err)
	}
	uc.log.Warn().Str("user_id", userID.String()).Msg("cleared has_profile flag left by an earlier delete")
	return nil
}
