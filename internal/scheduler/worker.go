package scheduler

import (
	"context"
	"fmt"
	"time"

	appsrepo "hireflow_backend/internal/applications/repository"
	"hireflow_backend/internal/events"
	scoringsvc "hireflow_backend/internal/scoring/service"
	"hireflow_backend/platform/config"
	"hireflow_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes the asynq queue: resume scoring and the stale
// application sweep.
type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	apps       *appsrepo.Repository
	scoring    *scoringsvc.Service
	bus        events.Bus
	log        *logger.Logger
	staleAfter time.Duration
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, scoring *scoringsvc.Service, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	staleAfter := cfg.GetStaleApplicationAfter()
	if staleAfter <= 0 {
		staleAfter = 7 * 24 * time.Hour
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:     server,
		mux:        mux,
		apps:       appsrepo.New(pool),
		scoring:    scoring,
		bus:        bus,
		log:        log,
		staleAfter: staleAfter,
	}

	mux.HandleFunc(TaskResumeScoring, w.handleResumeScoring)
	mux.HandleFunc(TaskStaleApplicationSweep, w.handleStaleSweep)

	return w, nil
}

// Run blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleResumeScoring(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseResumeScoringPayload(task)
	if err != nil {
		return err
	}

	applicationID, err := uuid.Parse(payload.ApplicationID)
	if err != nil {
		return err
	}

	return w.scoring.ScoreApplication(ctx, applicationID)
}

// handleStaleSweep publishes a reminder event for every non-terminal
// application without activity inside the configured window. Reminders
// repeat on every sweep until the application moves.
func (w *Worker) handleStaleSweep(ctx context.Context, _ *asynq.Task) error {
	cutoff := time.Now().UTC().Add(-w.staleAfter)
	stale, err := w.apps.ListStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list stale applications: %w", err)
	}

	for _, app := range stale {
		days := int(time.Since(app.LastActivityAt).Hours() / 24)
		recruiterEmail := ""
		if app.RecruiterEmail != nil {
			recruiterEmail = *app.RecruiterEmail
		}

		if err := w.bus.PublishSync(ctx, events.ApplicationStale{
			BaseEvent:       events.NewBaseEvent(),
			ApplicationID:   app.ID,
			CandidateName:   app.CandidateName,
			Stage:           string(app.Stage),
			AssignedTo:      app.AssignedTo,
			RecruiterEmail:  recruiterEmail,
			DaysSinceUpdate: days,
		}); err != nil {
			w.log.Warn("stale reminder delivery failed", "applicationId", app.ID, "error", err)
			continue
		}

		if err := w.apps.RecordActivity(ctx, app.ID, "stale_reminder",
			fmt.Sprintf("reminder sent after %d days without activity", days), nil); err != nil {
			w.log.Warn("failed to record stale reminder", "applicationId", app.ID, "error", err)
		}
	}

	if len(stale) > 0 {
		w.log.Info("stale application sweep completed", "reminders", len(stale))
	}
	return nil
}
