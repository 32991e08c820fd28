package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/embercoffee/contact-service/internal/config"
)

// EmailSender dispatches the admin notification email via the Resend API.
type EmailSender struct {
	client     *resend.Client
	from       string
	adminEmail string
}

// NewEmailSender creates the sender. A nil client (no API key) or empty
// recipient leaves the sender in skipped mode.
func NewEmailSender(cfg config.NotificationConfig) *EmailSender {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &EmailSender{
		client:     client,
		from:       cfg.EmailFrom,
		adminEmail: cfg.AdminEmail,
	}
}

// Send dispatches the notification email and returns the provider message
// id. Missing configuration yields ErrNotConfigured.
func (s *EmailSender) Send(ctx context.Context, n ContactNotification) (string, error) {
	if s.client == nil || s.adminEmail == "" {
		return "", ErrNotConfigured
	}

	subject := fmt.Sprintf("[Ember Coffee] New inquiry from %s", n.Name)
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.adminEmail},
		Subject: subject,
		Html:    renderEmailHTML(subject, n),
		Text:    renderEmailText(n),
	})
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	return sent.Id, nil
}

// renderEmailHTML builds the HTML body. Every interpolated user value goes
// through html.EscapeString so submitted text cannot inject markup.
func renderEmailHTML(subject string, n ContactNotification) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"UTF-8\"><title>")
	b.WriteString(html.EscapeString(subject))
	b.WriteString("</title></head>\n<body style=\"font-family: sans-serif; max-width: 600px; margin: 0 auto;\">\n")
	b.WriteString("<h1 style=\"color: #f59e0b;\">Ember Coffee</h1>\n")
	b.WriteString("<p>A new inquiry has been received.</p>\n<table style=\"width: 100%; border-collapse: collapse;\">\n")

	writeRow(&b, "Name", html.EscapeString(n.Name))
	writeRow(&b, "Email", fmt.Sprintf("<a href=\"mailto:%s\">%s</a>",
		html.EscapeString(n.Email), html.EscapeString(n.Email)))
	writeRow(&b, "Phone", html.EscapeString(orDashPtr(n.Phone)))
	if n.AttachmentURL != nil && *n.AttachmentURL != "" {
		writeRow(&b, "Attachment", fmt.Sprintf("<a href=\"%s\">View image</a>",
			html.EscapeString(*n.AttachmentURL)))
	}

	b.WriteString("</table>\n<h2 style=\"color: #374151;\">Message</h2>\n")
	b.WriteString("<div style=\"background: #f9fafb; padding: 15px; border-left: 4px solid #f59e0b; white-space: pre-wrap;\">")
	b.WriteString(html.EscapeString(n.Message))
	b.WriteString("</div>\n<p style=\"color: #6b7280; font-size: 12px;\">Received at ")
	b.WriteString(n.CreatedAt.Format(time.RFC1123))
	b.WriteString("<br>This email was sent automatically by the Ember Coffee inquiry system.</p>\n</body>\n</html>\n")
	return b.String()
}

func writeRow(b *strings.Builder, label, valueHTML string) {
	fmt.Fprintf(b, "<tr><td style=\"padding: 8px; background: #f9fafb; font-weight: bold; width: 120px;\">%s</td>"+
		"<td style=\"padding: 8px;\">%s</td></tr>\n", label, valueHTML)
}

// renderEmailText builds the plain-text fallback body.
func renderEmailText(n ContactNotification) string {
	var b strings.Builder
	b.WriteString("Ember Coffee - new inquiry\n\n")
	fmt.Fprintf(&b, "Name: %s\n", n.Name)
	fmt.Fprintf(&b, "Email: %s\n", n.Email)
	fmt.Fprintf(&b, "Phone: %s\n", orDashPtr(n.Phone))
	if n.AttachmentURL != nil && *n.AttachmentURL != "" {
		fmt.Fprintf(&b, "Attachment: %s\n", *n.AttachmentURL)
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n", n.Message)
	fmt.Fprintf(&b, "\nReceived at %s\n", n.CreatedAt.Format(time.RFC1123))
	return b.String()
}
