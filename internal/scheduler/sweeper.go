package scheduler

import (
	"context"
	"time"

	"hireflow_backend/platform/logger"
)

const defaultSweepInterval = 1 * time.Hour

// Sweeper periodically enqueues a stale application sweep. Only one
// instance should run; the task itself is idempotent so overlap with a
// slow sweep is harmless.
type Sweeper struct {
	client   *Client
	interval time.Duration
	log      *logger.Logger
}

func NewSweeper(client *Client, interval time.Duration, log *logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{client: client, interval: interval, log: log}
}

// Start runs the enqueue loop until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("stale application sweeper started", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			s.log.Info("stale application sweeper stopped")
			return
		case <-ticker.C:
			if err := s.client.EnqueueStaleSweep(ctx); err != nil {
				s.log.Error("failed to enqueue stale sweep", "error", err)
			}
		}
	}
}
