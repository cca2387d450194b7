package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hireflow_backend/internal/adapters"
	"hireflow_backend/internal/adapters/storage"
	"hireflow_backend/internal/analytics"
	"hireflow_backend/internal/applications"
	"hireflow_backend/internal/auth"
	"hireflow_backend/internal/events"
	apphttp "hireflow_backend/internal/http"
	"hireflow_backend/internal/http/router"
	"hireflow_backend/internal/jobs"
	"hireflow_backend/internal/notification"
	"hireflow_backend/internal/offers"
	"hireflow_backend/internal/scheduler"
	"hireflow_backend/platform/config"
	"hireflow_backend/platform/db"
	"hireflow_backend/platform/logger"
	"hireflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, log, val)
	jobsModule := jobs.NewModule(pool, log, val)
	applicationsModule := applications.NewModule(pool, eventBus, log, val)

	// Offers reach back into applications through an adapter so the offers
	// module only depends on its own ApplicationGateway interface.
	applicationsGateway := adapters.NewApplicationsGateway(applicationsModule.Service())
	offersModule := offers.NewModule(pool, applicationsGateway, eventBus, log, val)

	analyticsModule := analytics.NewModule(pool, log)

	// Resume storage is optional; without MinIO the upload endpoint is
	// simply not registered.
	if cfg.IsMinIOEnabled() {
		resumeStore, err := storage.NewResumeStore(cfg)
		if err != nil {
			log.Error("failed to initialize resume storage", "error", err)
			panic("failed to initialize resume storage: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure resume bucket", 5, 2*time.Second, func() error {
			return resumeStore.EnsureBucket(ctx)
		}); err != nil {
			log.Error("failed to ensure resume bucket exists", "error", err)
			panic("failed to ensure resume bucket exists: " + err.Error())
		}
		applicationsModule.SetResumeStore(resumeStore)
		log.Info("resume storage initialized", "bucket", cfg.GetMinioBucketResumes())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; resume uploads disabled")
	}

	// Background scoring is optional; without Redis new applications are
	// simply not enqueued for scoring.
	if cfg.GetRedisURL() != "" {
		schedulerClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize scheduler client", "error", err)
			panic("failed to initialize scheduler client: " + err.Error())
		}
		defer schedulerClient.Close()
		applicationsModule.SetScoringEnqueuer(schedulerClient)
		log.Info("task queue client initialized", "queue", cfg.GetAsynqQueueName())
	} else {
		log.Warn("REDIS_URL not configured; background resume scoring disabled")
	}

	// Candidate emails subscribe to domain events (not HTTP-facing).
	var sender notification.Sender = notification.NoopSender{}
	if cfg.EmailEnabled {
		sender = notification.NewSMTPSender(cfg)
		log.Info("email sender initialized", "host", cfg.SMTPHost)
	} else {
		log.Warn("EMAIL_ENABLED is false; candidate emails disabled")
	}
	notification.NewSubscribers(sender, jobsModule.Service(), cfg, log).Register(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			jobsModule,
			applicationsModule,
			offersModule,
			analyticsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
