package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
)

// Worker runs Asynq task handlers (password reset email, profile events).
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	webhook ports.WebhookEmitter
	log     zerolog.Logger
	// revealResetLinks logs reset URLs with their token. Development only.
	revealResetLinks bool
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
// Reset links are logged without their token unless revealResetLinks is set.
func NewWorker(redisOpt asynq.RedisClientOpt, concurrency int, webhook ports.WebhookEmitter, revealResetLinks bool, log zerolog.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 2
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueCritical: 6, QueueDefault: 3},
		LogLevel:    asynq.InfoLevel,
	})
	w := &Worker{srv: srv, webhook: webhook, log: log, revealResetLinks: revealResetLinks}
	w.mux = w.routes()
	return w
}

func (w *Worker) routes() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSendPasswordReset, w.handleSendPasswordReset)
	mux.HandleFunc(TypeProfileEvent, w.handleProfileEvent)
	return mux
}

func (w *Worker) handleSendPasswordReset(ctx context.Context, t *asynq.Task) error {
	var p passwordResetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("password reset task payload invalid")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	w.log.Info().
		Str("email", p.Email).
		Str("reset_url", w.loggableResetURL(p.ResetURL)).
		Msg("password reset email (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) loggableResetURL(raw string) string {
	if w.revealResetLinks {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparseable]"
	}
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (w *Worker) handleProfileEvent(ctx context.Context, t *asynq.Task) error {
	var ev ports.ProfileEvent
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		w.log.Error().Err(err).Msg("profile event payload invalid")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err := w.webhook.Emit(ctx, ev); err != nil {
		w.log.Warn().Err(err).Str("event", ev.Type).Str("username", ev.Username).Msg("profile webhook failed, will retry")
		return err
	}
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
