package notification

import (
	"time"
)

// Kind represents the tone of a transient notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// EventName is the server-sent event name notifications are published under
const EventName = "notification"

// Notification is a transient message surfaced to the user after an action
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
