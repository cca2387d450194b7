package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

type staticConfig struct {
	redisURL string
	queue    string
}

func (c staticConfig) GetRedisURL() string                    { return c.redisURL }
func (c staticConfig) GetRedisTLSInsecure() bool              { return false }
func (c staticConfig) GetAsynqQueueName() string              { return c.queue }
func (c staticConfig) GetAsynqConcurrency() int               { return 1 }
func (c staticConfig) GetStaleApplicationAfter() time.Duration { return 7 * 24 * time.Hour }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(staticConfig{}); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}

func TestEnqueueResumeScoring(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(staticConfig{redisURL: "redis://" + srv.Addr(), queue: "hireflow"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if err := client.EnqueueResumeScoring(context.Background(), uuid.New()); err != nil {
		t.Fatalf("EnqueueResumeScoring: %v", err)
	}

	// asynq stores pending tasks in a per-queue list.
	if !srv.Exists("asynq:{hireflow}:pending") {
		t.Fatal("expected a pending task on the hireflow queue")
	}
}

func TestEnqueueStaleSweep(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(staticConfig{redisURL: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if err := client.EnqueueStaleSweep(context.Background()); err != nil {
		t.Fatalf("EnqueueStaleSweep: %v", err)
	}

	if !srv.Exists("asynq:{default}:pending") {
		t.Fatal("expected a pending task on the default queue")
	}
}

func TestResumeScoringPayloadRoundTrip(t *testing.T) {
	id := uuid.New().String()
	task, err := NewResumeScoringTask(ResumeScoringPayload{ApplicationID: id})
	if err != nil {
		t.Fatalf("NewResumeScoringTask: %v", err)
	}

	payload, err := ParseResumeScoringPayload(task)
	if err != nil {
		t.Fatalf("ParseResumeScoringPayload: %v", err)
	}
	if payload.ApplicationID != id {
		t.Fatalf("ApplicationID = %q, want %q", payload.ApplicationID, id)
	}
}
