package profile

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// Gateway names used in GatewayError.
const (
	gatewayMedia = "media"
	gatewayStore = "profile store"
)

type SaveProfileInput struct {
	Profile domain.Profile
	// Image is a pending avatar. Nil or empty means keep the current avatar.
	Image []byte
}

type SaveProfileResult struct {
	Profile domain.Profile
}

// SaveProfile persists a profile, uploading a pending avatar first.
// A failed upload aborts the save: SaveUserInfo is only called once the
// avatar URL is known. Failures are returned as-is, never retried.
type SaveProfile struct {
	store    ports.ProfileStore
	media    ports.MediaStore
	enqueuer ports.TaskEnqueuer
	log      zerolog.Logger
}

func NewSaveProfile(store ports.ProfileStore, media ports.MediaStore, enqueuer ports.TaskEnqueuer, log zerolog.Logger) *SaveProfile {
	return &SaveProfile{store: store, media: media, enqueuer: enqueuer, log: log}
}

func (uc *SaveProfile) Execute(ctx context.Context, input SaveProfileInput) (*SaveProfileResult, error) {
	p := input.Profile.Clone()
	if err := Validate(p); err != nil {
		return nil, err
	}
	if len(input.Image) > 0 {
		url, err := uc.media.UploadImage(ctx, input.Image)
		if err != nil {
			return nil, domerrors.FromGateway(gatewayMedia, "upload image", err)
		}
		p = SetField(p, FieldAvatar, url)
	}
	if err := uc.store.SaveUserInfo(ctx, p); err != nil {
		return nil, domerrors.FromGateway(gatewayStore, "save user info", err)
	}
	publish(ctx, uc.enqueuer, uc.log, ports.EventProfileSaved, p)
	return &SaveProfileResult{Profile: p}, nil
}

// publish enqueues a profile event. The change is already persisted, so a
// failed enqueue is only logged.
func publish(ctx context.Context, enqueuer ports.TaskEnqueuer, log zerolog.Logger, eventType string, p domain.Profile) {
	if enqueuer == nil {
		return
	}
	err := enqueuer.EnqueueProfileEvent(ctx, ports.ProfileEvent{
		Type:       eventType,
		UserID:     p.ID.String(),
		Username:   p.Username,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("event", eventType).Str("username", p.Username).Msg("enqueue profile event failed")
	}
}
