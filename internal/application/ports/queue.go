package ports

import (
	"context"
	"time"
)

// Profile event types.
const (
	EventProfileCreated = "profile.created"
	EventProfileSaved   = "profile.saved"
	EventProfileDeleted = "profile.deleted"
)

// ProfileEvent is published after a profile change has been persisted.
type ProfileEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TaskEnqueuer enqueues async tasks (email, profile events).
type TaskEnqueuer interface {
	EnqueueSendPasswordReset(ctx context.Context, email, resetURL string) error
	EnqueueProfileEvent(ctx context.Context, event ProfileEvent) error
}
