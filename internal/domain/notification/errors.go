package notification

import "errors"

// Notification domain errors
var (
	ErrInvalidNotificationType = errors.New("invalid notification type")
	ErrMissingRecipient        = errors.New("notification has no recipient")
	ErrQueueClosed             = errors.New("notification queue is closed")
)
