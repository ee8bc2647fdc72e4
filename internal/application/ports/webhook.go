package ports

import "context"

// WebhookEmitter delivers profile events to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event ProfileEvent) error
}
