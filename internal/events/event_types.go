package events

import (
	"time"

	"github.com/spec-kit/lead-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventCallbackRequested        EventType = "callback_requested"
)

// Actor encapsulates actor metadata for an event. UserID is nil for
// anonymous submissions from the public site.
type Actor struct {
	UserID *int64 `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ApplicationID int64       `json:"application_id,omitempty"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message,omitempty"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
}

// CallbackRequestedPayload payload.
type CallbackRequestedPayload struct {
	Phone         string `json:"phone"`
	PreferredTime string `json:"preferred_time,omitempty"`
}
