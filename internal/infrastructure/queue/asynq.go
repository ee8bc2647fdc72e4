package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
)

const (
	TypeSendPasswordReset = "email:password_reset"
	TypeProfileEvent      = "profile:event"
)

// Queues used by the worker, by priority.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// passwordResetPayload is the JSON body of a TypeSendPasswordReset task.
type passwordResetPayload struct {
	Email    string `json:"email"`
	ResetURL string `json:"reset_url"`
}

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueSendPasswordReset(ctx context.Context, email, resetURL string) error {
	payload, _ := json.Marshal(passwordResetPayload{Email: email, ResetURL: resetURL})
	task := asynq.NewTask(TypeSendPasswordReset, payload)
	_, err := q.client.EnqueueContext(ctx, task, asynq.Queue(QueueCritical), asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
	if err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue password reset email failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueProfileEvent(ctx context.Context, event ports.ProfileEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeProfileEvent, payload)
	_, err = q.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(10))
	if err != nil {
		q.log.Warn().Err(err).Str("event", event.Type).Str("username", event.Username).Msg("enqueue profile event failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
