package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/embercoffee/contact-service/internal/api/http"
	"github.com/embercoffee/contact-service/internal/api/http/handlers"
	"github.com/embercoffee/contact-service/internal/auth"
	"github.com/embercoffee/contact-service/internal/config"
	"github.com/embercoffee/contact-service/internal/events"
	"github.com/embercoffee/contact-service/internal/notify"
	"github.com/embercoffee/contact-service/internal/observability"
	"github.com/embercoffee/contact-service/internal/persistence"
	"github.com/embercoffee/contact-service/internal/ratelimit"
	"github.com/embercoffee/contact-service/internal/repository"
	"github.com/embercoffee/contact-service/internal/service"
	"github.com/embercoffee/contact-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var attachments storage.AttachmentStore
	if cfg.Storage.Bucket != "" {
		store, err := storage.NewS3AttachmentStore(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to init attachment store", zap.Error(err))
		}
		attachments = store
	} else {
		logger.Warn("STORAGE_BUCKET not set; attachment uploads disabled")
	}

	contactRepo := repository.NewContactRepository(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher()

	notificationService := service.NewNotificationService(
		dispatcher,
		notify.NewDiscordSender(cfg.Notification.DiscordWebhookURL),
		notify.NewEmailSender(cfg.Notification),
		logger,
	)
	notificationService.RegisterHandlers()

	contactService := service.NewContactService(service.ContactDependencies{
		ContactRepo: contactRepo,
		Attachments: attachments,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	adminService := service.NewAdminService(contactRepo, dispatcher, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	adminMiddleware := auth.NewAdminMiddleware(tokens)
	limiter := ratelimit.NewSubmissionLimiter(redis.Client, cfg.RateLimit.SubmissionsPerMinute, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{BodyLimit: service.MaxAttachmentBytes + 1<<20})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Contact:         handlers.NewContactHandler(contactService, limiter),
		Admin:           handlers.NewAdminHandler(adminService, tokens, cfg.Auth),
		AdminMiddleware: adminMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
