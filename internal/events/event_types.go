package events

import (
	"time"

	"github.com/embercoffee/contact-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactCreated       EventType = "contact_created"
	EventContactStatusChanged EventType = "contact_status_changed"
	EventContactDeleted       EventType = "contact_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ContactID string      `json:"contact_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ContactCreatedPayload carries the persisted record to subscribers.
type ContactCreatedPayload struct {
	Contact domain.Contact `json:"contact"`
}

// ContactStatusChangedPayload payload.
type ContactStatusChangedPayload struct {
	NewStatus domain.ContactStatus `json:"new_status"`
}
