package dto

import (
	"time"

	"github.com/embercoffee/contact-service/internal/domain"
)

// SubmitContactRequest payload for JSON submissions.
type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactResponse is the wire shape of one inquiry.
type ContactResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         *string              `json:"phone"`
	Message       string               `json:"message"`
	AttachmentURL *string              `json:"attachment_url"`
	Status        domain.ContactStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

// FromContact maps the domain aggregate to the response shape.
func FromContact(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:            contact.ID,
		Name:          contact.Name,
		Email:         contact.Email,
		Phone:         contact.Phone,
		Message:       contact.Message,
		AttachmentURL: contact.AttachmentURL,
		Status:        contact.Status,
		CreatedAt:     contact.CreatedAt,
	}
}
