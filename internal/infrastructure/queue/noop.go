package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
)

// NoopEnqueuer is used when Redis/Asynq is not configured. It logs what
// would have been enqueued.
type NoopEnqueuer struct {
	log zerolog.Logger
}

func NewNoopEnqueuer(log zerolog.Logger) *NoopEnqueuer {
	return &NoopEnqueuer{log: log}
}

func (q *NoopEnqueuer) EnqueueSendPasswordReset(ctx context.Context, email, resetURL string) error {
	q.log.Info().Str("email", email).Str("reset_url", resetURL).Msg("password reset email (queue disabled)")
	return nil
}

func (q *NoopEnqueuer) EnqueueProfileEvent(ctx context.Context, event ports.ProfileEvent) error {
	q.log.Debug().Str("event", event.Type).Str("username", event.Username).Msg("profile event dropped (queue disabled)")
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
