package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/endurancy/fiscal-api/internal/application/service"
	"github.com/endurancy/fiscal-api/internal/config"
	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/internal/infrastructure/database"
	"github.com/endurancy/fiscal-api/internal/infrastructure/messaging"
	"github.com/endurancy/fiscal-api/internal/infrastructure/repository"
	"github.com/endurancy/fiscal-api/internal/presentation/http/handler"
	"github.com/endurancy/fiscal-api/internal/presentation/http/routes"
	"github.com/endurancy/fiscal-api/pkg/fiscalprinter"
	"github.com/endurancy/fiscal-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Repositories
	configRepo := repository.NewFiscalConfigRepository(db)
	documentRepo := repository.NewFiscalDocumentRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Printer subsystem
	registry := fiscalprinter.DefaultRegistry(cfg.Fiscal.PaperWidth)
	sessions := fiscalprinter.NewSessionManager(registry)

	// Services
	policy := entity.NewCancellationPolicy(cfg.Fiscal.CancellationWindow())
	configService := service.NewFiscalConfigService(configRepo)
	documentService := service.NewFiscalDocumentService(uow, configRepo, documentRepo, outboxRepo, sessions, policy, log)
	printerService := service.NewPrinterService(configRepo, registry, sessions, log)
	reportService := service.NewReportService(configRepo, documentRepo, sessions, log)

	// Handlers
	handlers := &routes.Handlers{
		Config:   handler.NewFiscalConfigHandler(configService),
		Document: handler.NewFiscalDocumentHandler(documentService),
		Printer:  handler.NewPrinterHandler(printerService, reportService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: idempotencyRepo,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Expired idempotency keys are swept hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
					log.Warn().Err(err).Msg("idempotency key cleanup failed")
				}
			}
		}
	}()

	// Outbox publisher is optional: without a broker, events stay queued
	// in the outbox table.
	if cfg.AMQP.URL != "" {
		publisher := messaging.NewOutboxPublisher(outboxRepo, cfg.AMQP, log)
		if err := publisher.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to start outbox publisher")
		}
		defer publisher.Close()
	}

	log.Info().
		Str("service", cfg.App.Name).
		Str("port", cfg.App.Port).
		Msg("starting server")

	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
