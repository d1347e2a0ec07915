package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	HistorySize int // default: 50
	BufferSize  int // default: 10
}

type service struct {
	hub    *sse.Hub
	logger *slog.Logger
	config Config
	now    func() time.Time

	mu      sync.Mutex
	history []notification.Notification
}

// NewNotificationService creates a notification service that publishes every
// notification to hub and keeps a bounded history for polling clients
func NewNotificationService(hub *sse.Hub, logger *slog.Logger, cfg Config) notification.Service {
	if cfg.HistorySize == 0 {
		cfg.HistorySize = 50
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 10
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		hub:    hub,
		logger: logger,
		config: cfg,
		now:    time.Now,
	}
}

func (s *service) Success(ctx context.Context, message string) {
	s.publish(ctx, notification.KindSuccess, message)
}

func (s *service) Error(ctx context.Context, message string) {
	s.publish(ctx, notification.KindError, message)
}

func (s *service) publish(ctx context.Context, kind notification.Kind, message string) {
	n := notification.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.history = append(s.history, n)
	if over := len(s.history) - s.config.HistorySize; over > 0 {
		s.history = append([]notification.Notification(nil), s.history[over:]...)
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "notification published",
		slog.String("kind", string(kind)),
		slog.String("message", message),
	)
	s.hub.Publish(sse.Event{Name: notification.EventName, Data: n})
}

func (s *service) Recent(limit int) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	out := make([]notification.Notification, 0, limit)
	for i := len(s.history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.history[i])
	}
	return out
}

func (s *service) Subscribe(ctx context.Context) (<-chan notification.Notification, func()) {
	events, cleanup := s.hub.Subscribe()
	out := make(chan notification.Notification, s.config.BufferSize)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				n, ok := event.Data.(notification.Notification)
				if !ok {
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}
