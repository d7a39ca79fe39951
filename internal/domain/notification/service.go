package notification

import "context"

// Service queues notifications for background delivery
type Service interface {
	// Queue never blocks on delivery; a full queue falls back to a direct send.
	Queue(ctx context.Context, n Notification) error

	// Stop drains the queue and waits for workers
	Stop()
}
