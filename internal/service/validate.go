package service

import (
	"regexp"
	"strings"
)

// Submitter-facing validation messages. These stay static and generic;
// provider errors are never echoed back.
const (
	MsgNameRequired    = "Please enter your name."
	MsgEmailInvalid    = "Please enter a valid email address."
	MsgMessageRequired = "Please enter your message."
)

// Matches local@domain.tld with no whitespace, exactly one @ and at least
// one dot after it.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmissionInput is the raw form input before any normalization.
type SubmissionInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// NormalizedSubmission is the validated, trimmed form data. Email is
// lowercased; an empty phone becomes nil.
type NormalizedSubmission struct {
	Name    string
	Email   string
	Phone   *string
	Message string
}

// ValidateSubmission checks every field independently and collects all
// violations into a field name to message map. It has no side effects; an
// empty map means the input passed.
func ValidateSubmission(in SubmissionInput) (NormalizedSubmission, map[string]string) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	message := strings.TrimSpace(in.Message)

	fieldErrors := map[string]string{}

	if name == "" {
		fieldErrors["name"] = MsgNameRequired
	}
	if email == "" || !emailPattern.MatchString(email) {
		fieldErrors["email"] = MsgEmailInvalid
	}
	if message == "" {
		fieldErrors["message"] = MsgMessageRequired
	}

	if len(fieldErrors) > 0 {
		return NormalizedSubmission{}, fieldErrors
	}

	normalized := NormalizedSubmission{
		Name:    name,
		Email:   strings.ToLower(email),
		Message: message,
	}
	if phone != "" {
		normalized.Phone = &phone
	}
	return normalized, nil
}
