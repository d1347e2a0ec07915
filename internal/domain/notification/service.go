package notification

import (
	"context"
)

// Notifier is what page controllers use to surface outcomes
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// Service defines the notification service interface
type Service interface {
	Notifier

	// Recent returns the newest notifications first
	Recent(limit int) []Notification

	// SSE subscription
	Subscribe(ctx context.Context) (<-chan Notification, func())
}
