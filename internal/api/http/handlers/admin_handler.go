package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/embercoffee/contact-service/internal/api/dto"
	"github.com/embercoffee/contact-service/internal/auth"
	"github.com/embercoffee/contact-service/internal/config"
	"github.com/embercoffee/contact-service/internal/domain"
	"github.com/embercoffee/contact-service/internal/service"
	apperrors "github.com/embercoffee/contact-service/pkg/util"
)

const (
	defaultDailyDays = 7
	maxDailyDays     = 90
)

// AdminHandler serves the password-gated dashboard endpoints.
type AdminHandler struct {
	service *service.AdminService
	tokens  *auth.TokenManager
	authCfg config.AuthConfig
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, tokens *auth.TokenManager, authCfg config.AuthConfig) *AdminHandler {
	return &AdminHandler{service: adminService, tokens: tokens, authCfg: authCfg}
}

// Login POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := auth.VerifyAdminPassword(h.authCfg, req.Password); err != nil {
		return apperrors.NewUnauthorized("invalid password")
	}

	token, expiresAt, err := h.tokens.GenerateToken()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{Token: token, ExpiresAt: expiresAt}})
}

// ListContacts GET /api/admin/contacts.
func (h *AdminHandler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, dto.FromContact(&contacts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateStatus PATCH /api/admin/contacts/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), domain.ContactStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "status": req.Status}})
}

// DeleteContact DELETE /api/admin/contacts/:id.
func (h *AdminHandler) DeleteContact(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "deleted": true}})
}

// GetStats GET /api/admin/stats.
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// GetDailyCounts GET /api/admin/stats/daily?days=N.
func (h *AdminHandler) GetDailyCounts(c *fiber.Ctx) error {
	days := parseDays(c.Query("days"))
	counts, err := h.service.DailyCounts(c.UserContext(), days)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

func parseDays(val string) int {
	if val == "" {
		return defaultDailyDays
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return defaultDailyDays
	}
	if parsed > maxDailyDays {
		return maxDailyDays
	}
	return parsed
}
