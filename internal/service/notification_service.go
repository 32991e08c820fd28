package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/embercoffee/contact-service/internal/events"
	"github.com/embercoffee/contact-service/internal/notify"
)

// WebhookSender posts an inquiry notification to a chat webhook.
type WebhookSender interface {
	Send(ctx context.Context, n notify.ContactNotification) error
}

// MailSender dispatches the admin notification email.
type MailSender interface {
	Send(ctx context.Context, n notify.ContactNotification) (string, error)
}

// NotificationService fans out best-effort notifications for created
// contacts. Both senders run on every submission; each outcome is only
// logged, never folded into the submission result.
type NotificationService struct {
	dispatcher events.Dispatcher
	webhook    WebhookSender
	email      MailSender
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, webhook WebhookSender, email MailSender, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		webhook:    webhook,
		email:      email,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContactCreated, n.handleContactCreated)
	n.dispatcher.Subscribe(events.EventContactStatusChanged, n.handleContactStatusChanged)
	n.dispatcher.Subscribe(events.EventContactDeleted, n.handleContactDeleted)
}

// handleContactStatusChanged writes the audit line for dashboard status
// mutations.
func (n *NotificationService) handleContactStatusChanged(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("contact_id", event.ContactID)}
	if payload, ok := event.Payload.(events.ContactStatusChangedPayload); ok {
		fields = append(fields, zap.String("new_status", string(payload.NewStatus)))
	}
	n.logger.Info("contact status changed", fields...)
	return nil
}

// handleContactDeleted writes the audit line for dashboard deletions.
func (n *NotificationService) handleContactDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("contact deleted", zap.String("contact_id", event.ContactID))
	return nil
}

func (n *NotificationService) handleContactCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected contact_created payload", zap.String("event_id", event.ID))
		return nil
	}

	contact := payload.Contact
	notification := notify.ContactNotification{
		Name:          contact.Name,
		Email:         contact.Email,
		Phone:         contact.Phone,
		Message:       contact.Message,
		AttachmentURL: contact.AttachmentURL,
		CreatedAt:     contact.CreatedAt,
	}

	if err := n.webhook.Send(ctx, notification); err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			n.logger.Debug("webhook notification skipped", zap.String("contact_id", contact.ID))
		} else {
			n.logger.Warn("webhook notification failed", zap.String("contact_id", contact.ID), zap.Error(err))
		}
	} else {
		n.logger.Info("webhook notification sent", zap.String("contact_id", contact.ID))
	}

	messageID, err := n.email.Send(ctx, notification)
	if err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			n.logger.Debug("email notification skipped", zap.String("contact_id", contact.ID))
		} else {
			n.logger.Warn("email notification failed", zap.String("contact_id", contact.ID), zap.Error(err))
		}
	} else {
		n.logger.Info("email notification sent",
			zap.String("contact_id", contact.ID),
			zap.String("message_id", messageID))
	}

	return nil
}
