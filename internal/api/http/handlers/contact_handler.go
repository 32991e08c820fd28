package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/embercoffee/contact-service/internal/api/dto"
	"github.com/embercoffee/contact-service/internal/ratelimit"
	"github.com/embercoffee/contact-service/internal/service"
	apperrors "github.com/embercoffee/contact-service/pkg/util"
)

// ContactHandler serves the public submission endpoint.
type ContactHandler struct {
	service *service.ContactService
	limiter *ratelimit.SubmissionLimiter
}

// NewContactHandler constructs handler.
func NewContactHandler(contactService *service.ContactService, limiter *ratelimit.SubmissionLimiter) *ContactHandler {
	return &ContactHandler{service: contactService, limiter: limiter}
}

// Submit POST /api/contact. Accepts a JSON body, or multipart form data
// when an attachment is included.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	if !h.limiter.Allow(c.UserContext(), c.IP()) {
		return apperrors.NewRateLimited("too many submissions, please try again later")
	}

	input, attachment, err := parseSubmission(c)
	if err != nil {
		return err
	}

	contact, err := h.service.Submit(c.UserContext(), input, attachment)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":    dto.FromContact(contact),
		"message": "Your inquiry has been received.",
	})
}

func parseSubmission(c *fiber.Ctx) (service.SubmissionInput, *service.AttachmentInput, error) {
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		var req dto.SubmitContactRequest
		if err := c.BodyParser(&req); err != nil {
			return service.SubmissionInput{}, nil, apperrors.NewValidationError("invalid payload", nil)
		}
		return service.SubmissionInput{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
		}, nil, nil
	}

	input := service.SubmissionInput{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		Message: c.FormValue("message"),
	}

	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		// attachment is optional even on multipart submissions
		return input, nil, nil
	}

	fileType := fileHeader.Header.Get("Content-Type")
	if err := service.CheckAttachment(fileType, fileHeader.Size); err != nil {
		return service.SubmissionInput{}, nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return service.SubmissionInput{}, nil, apperrors.NewInternalError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxAttachmentBytes+1))
	if err != nil {
		return service.SubmissionInput{}, nil, apperrors.NewInternalError(err)
	}

	return input, &service.AttachmentInput{
		Data:        data,
		ContentType: fileType,
		Filename:    fileHeader.Filename,
	}, nil
}
