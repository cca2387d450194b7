package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hireflow_backend/internal/adapters/storage"
	appsrepo "hireflow_backend/internal/applications/repository"
	"hireflow_backend/internal/events"
	jobsrepo "hireflow_backend/internal/jobs/repository"
	jobssvc "hireflow_backend/internal/jobs/service"
	"hireflow_backend/internal/notification"
	"hireflow_backend/internal/scheduler"
	scoringclient "hireflow_backend/internal/scoring/client"
	scoringsvc "hireflow_backend/internal/scoring/service"
	"hireflow_backend/platform/config"
	"hireflow_backend/platform/db"
	"hireflow_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	// Stale reminder emails originate in this process, so the worker runs
	// its own notification subscribers.
	var sender notification.Sender = notification.NoopSender{}
	if cfg.EmailEnabled {
		sender = notification.NewSMTPSender(cfg)
	}
	jobsStore := jobsrepo.New(pool)
	notification.NewSubscribers(sender, jobssvc.New(jobsStore, log), cfg, log).Register(eventBus)

	scoringService := scoringsvc.New(appsrepo.New(pool), jobsStore, eventBus, log)
	if cfg.IsScoringEnabled() {
		scoringService.SetScorer(scoringclient.NewScoreClient(cfg.GetScoringAPIURL(), cfg.GetScoringAPIKey(), log))
		log.Info("remote resume scorer configured", "url", cfg.GetScoringAPIURL())
	} else {
		log.Warn("SCORING_API_URL not configured; using keyword fallback scorer")
	}
	if cfg.IsParserEnabled() && cfg.IsMinIOEnabled() {
		resumeStore, err := storage.NewResumeStore(cfg)
		if err != nil {
			log.Error("failed to initialize resume storage", "error", err)
			panic("failed to initialize resume storage: " + err.Error())
		}
		scoringService.SetParser(scoringclient.NewParseClient(cfg.GetParserAPIURL(), log), resumeStore)
		log.Info("resume parser configured", "url", cfg.GetParserAPIURL())
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	sweepInterval := getDurationEnv("STALE_SWEEP_INTERVAL", time.Hour)
	go scheduler.NewSweeper(client, sweepInterval, log).Start(ctx)

	worker, err := scheduler.NewWorker(cfg, pool, scoringService, eventBus, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}
