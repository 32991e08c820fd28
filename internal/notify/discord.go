package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotConfigured marks a sender whose configuration is absent. Callers
// treat it as a skipped send, not a delivery failure.
var ErrNotConfigured = errors.New("sender not configured")

const (
	embedColorAmber  = 0xF59E0B
	maxEmbedMessage  = 1000
	discordSendLimit = 10 * time.Second
)

// ContactNotification carries the fields both senders render.
type ContactNotification struct {
	Name          string
	Email         string
	Phone         *string
	Message       string
	AttachmentURL *string
	CreatedAt     time.Time
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbedFooter struct {
	Text string `json:"text"`
}

type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Footer      *discordEmbedFooter `json:"footer,omitempty"`
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds,omitempty"`
}

// DiscordSender posts inquiry notifications to a Discord webhook.
type DiscordSender struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordSender creates the sender. The http.Client is shared across
// requests; the wrapped endpoint is stateless.
func NewDiscordSender(webhookURL string) *DiscordSender {
	return &DiscordSender{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: discordSendLimit},
	}
}

// Send posts the inquiry embed. Non-2xx responses and transport failures
// return an error; the caller only logs it.
func (s *DiscordSender) Send(ctx context.Context, n ContactNotification) error {
	if s.webhookURL == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(buildDiscordPayload(n))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

func buildDiscordPayload(n ContactNotification) discordWebhookPayload {
	fields := []discordEmbedField{
		{Name: "Email", Value: orDash(n.Email), Inline: true},
		{Name: "Phone", Value: orDashPtr(n.Phone), Inline: true},
		{Name: "Message", Value: truncate(n.Message, maxEmbedMessage)},
	}
	if n.AttachmentURL != nil && *n.AttachmentURL != "" {
		fields = append(fields, discordEmbedField{
			Name:  "Attachment",
			Value: fmt.Sprintf("[View image](%s)", *n.AttachmentURL),
		})
	}

	return discordWebhookPayload{
		Embeds: []discordEmbed{{
			Title:       "New inquiry received",
			Description: fmt.Sprintf("**Name**: %s", n.Name),
			Color:       embedColorAmber,
			Fields:      fields,
			Timestamp:   n.CreatedAt.UTC().Format(time.RFC3339),
			Footer:      &discordEmbedFooter{Text: "Ember Coffee inquiry system"},
		}},
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orDashPtr(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
