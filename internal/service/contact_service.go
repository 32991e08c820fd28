package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/embercoffee/contact-service/internal/domain"
	"github.com/embercoffee/contact-service/internal/events"
	"github.com/embercoffee/contact-service/internal/repository"
	"github.com/embercoffee/contact-service/internal/storage"
	apperrors "github.com/embercoffee/contact-service/pkg/util"
)

// MaxAttachmentBytes caps uploaded attachment size.
const MaxAttachmentBytes = 5 << 20

// MsgCheckInput is the generic submitter-facing validation failure message.
const MsgCheckInput = "Please check the submitted fields."

// AttachmentInput is an optional uploaded image accompanying a submission.
type AttachmentInput struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ContactService runs the submission pipeline:
// validate, upload (optional), persist, notify.
type ContactService struct {
	contacts    repository.ContactRepository
	attachments storage.AttachmentStore
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// ContactDependencies bundles collaborators for the contact service.
// Attachments may be nil when no bucket is configured.
type ContactDependencies struct {
	ContactRepo repository.ContactRepository
	Attachments storage.AttachmentStore
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewContactService constructs the service.
func NewContactService(deps ContactDependencies) *ContactService {
	return &ContactService{
		contacts:    deps.ContactRepo,
		attachments: deps.Attachments,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// Submit runs one submission through the pipeline. Validation and
// upload/persist failures abort with no record created; notification runs
// via the dispatcher only after the record is durable and never fails the
// submission.
func (s *ContactService) Submit(ctx context.Context, input SubmissionInput, attachment *AttachmentInput) (*domain.Contact, error) {
	normalized, fieldErrors := ValidateSubmission(input)
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(MsgCheckInput, fieldErrors)
	}

	var attachmentURL *string
	if attachment != nil {
		url, err := s.uploadAttachment(ctx, attachment)
		if err != nil {
			return nil, err
		}
		attachmentURL = &url
	}

	contact := &domain.Contact{
		Name:          normalized.Name,
		Email:         normalized.Email,
		Phone:         normalized.Phone,
		Message:       normalized.Message,
		AttachmentURL: attachmentURL,
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		s.logger.Error("contact insert failed", zap.Error(err))
		return nil, apperrors.NewPersistenceFailed(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventContactCreated,
		ContactID: contact.ID,
		Payload:   events.ContactCreatedPayload{Contact: *contact},
	})
	return contact, nil
}

func (s *ContactService) uploadAttachment(ctx context.Context, attachment *AttachmentInput) (string, error) {
	if err := CheckAttachment(attachment.ContentType, int64(len(attachment.Data))); err != nil {
		return "", err
	}
	if s.attachments == nil {
		return "", apperrors.NewStorageUnavailable(errors.New("no attachment store configured"))
	}

	url, err := s.attachments.Upload(ctx, attachment.Data, attachment.ContentType, attachmentExt(attachment))
	if err != nil {
		s.logger.Error("attachment upload failed", zap.Error(err))
		if errors.Is(err, storage.ErrBucketNotFound) {
			return "", apperrors.NewStorageUnavailable(err)
		}
		return "", apperrors.NewStorageFailed(err)
	}
	return url, nil
}

// CheckAttachment enforces the image-only MIME type and size cap.
func CheckAttachment(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewDomainError("ATTACHMENT_INVALID", "only image attachments are accepted", 400, nil)
	}
	if size > MaxAttachmentBytes {
		return apperrors.NewDomainError("ATTACHMENT_TOO_LARGE", "attachment may not exceed 5 MiB", 400, nil)
	}
	return nil
}

func attachmentExt(attachment *AttachmentInput) string {
	switch attachment.ContentType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	}
	if ext := strings.TrimPrefix(filepath.Ext(attachment.Filename), "."); ext != "" {
		return ext
	}
	return "bin"
}

func (s *ContactService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
