package handlers_test

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/embercoffee/contact-service/internal/api/http"
	"github.com/embercoffee/contact-service/internal/api/http/handlers"
	"github.com/embercoffee/contact-service/internal/auth"
	"github.com/embercoffee/contact-service/internal/config"
	"github.com/embercoffee/contact-service/internal/domain"
	"github.com/embercoffee/contact-service/internal/events"
	"github.com/embercoffee/contact-service/internal/observability"
	"github.com/embercoffee/contact-service/internal/ratelimit"
	"github.com/embercoffee/contact-service/internal/repository"
	"github.com/embercoffee/contact-service/internal/service"
	"github.com/embercoffee/contact-service/internal/storage"
)

const testAdminPassword = "correct-horse"

// mockContactRepo implements repository.ContactRepository with overridable
// func fields.
type mockContactRepo struct {
	createFunc       func(ctx context.Context, contact *domain.Contact) error
	listFunc         func(ctx context.Context) ([]domain.Contact, error)
	updateStatusFunc func(ctx context.Context, id string, status domain.ContactStatus) error
	deleteFunc       func(ctx context.Context, id string) error
	countFunc        func(ctx context.Context, filter repository.CountFilter) (int64, error)
	rangeFunc        func(ctx context.Context, from, to time.Time) ([]time.Time, error)

	createCalls int
	deletedIDs  []string
}

func (m *mockContactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, contact)
	}
	contact.ID = "contact-1"
	contact.Status = domain.ContactStatusPending
	contact.CreatedAt = time.Now()
	return nil
}

func (m *mockContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockContactRepo) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockContactRepo) Delete(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockContactRepo) Count(ctx context.Context, filter repository.CountFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockContactRepo) CreatedAtInRange(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	if m.rangeFunc != nil {
		return m.rangeFunc(ctx, from, to)
	}
	return nil, nil
}

type mockAttachmentStore struct {
	uploadFunc  func(ctx context.Context, data []byte, contentType, ext string) (string, error)
	uploadCalls int
}

func (m *mockAttachmentStore) Upload(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	m.uploadCalls++
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, data, contentType, ext)
	}
	return "https://cdn.example.com/contacts/1-abc." + ext, nil
}

// newTestApp wires a fiber app over mocked persistence, mirroring the
// production wiring in cmd/api.
func newTestApp(repo repository.ContactRepository, store storage.AttachmentStore) (*fiber.App, *auth.TokenManager) {
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()

	contactService := service.NewContactService(service.ContactDependencies{
		ContactRepo: repo,
		Attachments: store,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	adminService := service.NewAdminService(repo, dispatcher, logger)

	authCfg := config.AuthConfig{
		AdminPassword:   testAdminPassword,
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 10,
	}
	tokens := auth.NewTokenManager(authCfg.JWTSecret, authCfg.TokenTTL())
	limiter := ratelimit.NewSubmissionLimiter(nil, 0, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler("test", "dev", nil, nil),
		Contact:         handlers.NewContactHandler(contactService, limiter),
		Admin:           handlers.NewAdminHandler(adminService, tokens, authCfg),
		AdminMiddleware: auth.NewAdminMiddleware(tokens),
	})
	return app, tokens
}

func adminToken(tokens *auth.TokenManager) string {
	token, _, err := tokens.GenerateToken()
	if err != nil {
		panic(err)
	}
	return token
}
