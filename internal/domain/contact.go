package domain

import "time"

// ContactStatus enumerates handling states for inquiries.
type ContactStatus string

const (
	ContactStatusPending   ContactStatus = "pending"
	ContactStatusCompleted ContactStatus = "completed"
)

// Valid reports whether the status is one of the enumerated values.
func (s ContactStatus) Valid() bool {
	return s == ContactStatusPending || s == ContactStatusCompleted
}

// Contact is one submitted inquiry. ID, CreatedAt and the default status
// are assigned by the database at insert time.
type Contact struct {
	ID            string
	Name          string
	Email         string
	Phone         *string
	Message       string
	AttachmentURL *string
	Status        ContactStatus
	CreatedAt     time.Time
}
