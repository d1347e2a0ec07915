package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
)

const defaultRecentLimit = 20

type NotificationHandler interface {
	// Recent is the polling fallback for clients without SSE
	Recent(w http.ResponseWriter, r *http.Request)
	// Stream pushes notifications as server-sent events
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
	logger       *slog.Logger
	keepalive    time.Duration
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService notification.Service, logger *slog.Logger) NotificationHandler {
	return &notificationHandlerImpl{
		notifService: notifService,
		logger:       logger,
		keepalive:    30 * time.Second,
	}
}

// Recent handles GET /ui/notifications?limit=
func (h *notificationHandlerImpl) Recent(w http.ResponseWriter, r *http.Request) {
	limit := getIntQueryParam(r, "limit", defaultRecentLimit)
	response.Success(w, h.notifService.Recent(limit))
}

// Stream handles SSE connection for notifications
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.notifService.Subscribe(r.Context())
	defer cleanup()

	// Send initial connection event
	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case n, ok := <-events:
			if !ok {
				return
			}
			if err := sse.WriteEvent(w, sse.Event{Name: notification.EventName, Data: n}); err != nil {
				h.logger.WarnContext(r.Context(), "sse write failed", slog.String("error", err.Error()))
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			// Send keepalive ping
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
