package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/embercoffee/contact-service/internal/api/http/handlers"
	"github.com/embercoffee/contact-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Contact         *handlers.ContactHandler
	Admin           *handlers.AdminHandler
	AdminMiddleware *auth.AdminMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/contact", cfg.Contact.Submit)

	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", cfg.Admin.Login)

	protected := adminGroup.Group("", cfg.AdminMiddleware.Handle)
	protected.Get("/contacts", cfg.Admin.ListContacts)
	protected.Patch("/contacts/:id/status", cfg.Admin.UpdateStatus)
	protected.Delete("/contacts/:id", cfg.Admin.DeleteContact)
	protected.Get("/stats", cfg.Admin.GetStats)
	protected.Get("/stats/daily", cfg.Admin.GetDailyCounts)
}
