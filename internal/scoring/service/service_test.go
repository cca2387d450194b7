package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appsrepo "hireflow_backend/internal/applications/repository"
	"hireflow_backend/internal/events"
	jobsrepo "hireflow_backend/internal/jobs/repository"
	"hireflow_backend/platform/logger"

	"github.com/google/uuid"
)

func TestKeywordOverlapScore(t *testing.T) {
	job := "Senior Go engineer building Postgres services with Kubernetes"
	resume := "Experienced Go engineer. Shipped Postgres-backed services."

	score := KeywordOverlapScore(resume, job)
	if score <= 0 || score > 100 {
		t.Fatalf("score = %d, want within (0, 100]", score)
	}

	// Deterministic across runs.
	if again := KeywordOverlapScore(resume, job); again != score {
		t.Fatalf("score not deterministic: %d then %d", score, again)
	}

	if got := KeywordOverlapScore("unrelated text entirely", job); got >= score {
		t.Fatalf("unrelated resume scored %d, matched resume %d", got, score)
	}
	if got := KeywordOverlapScore(resume, ""); got != 0 {
		t.Fatalf("empty job description scored %d, want 0", got)
	}
}

func TestStrengthFor(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "weak"},
		{39, "weak"},
		{40, "moderate"},
		{69, "moderate"},
		{70, "strong"},
		{100, "strong"},
	}
	for _, tc := range cases {
		if got := StrengthFor(tc.score); got != tc.want {
			t.Errorf("StrengthFor(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

type fakeApps struct {
	mu       sync.Mutex
	apps     map[uuid.UUID]appsrepo.Application
	scores   map[uuid.UUID]int
	strength map[uuid.UUID]string
	texts    map[uuid.UUID]string
}

func newFakeApps() *fakeApps {
	return &fakeApps{
		apps:     make(map[uuid.UUID]appsrepo.Application),
		scores:   make(map[uuid.UUID]int),
		strength: make(map[uuid.UUID]string),
		texts:    make(map[uuid.UUID]string),
	}
}

func (f *fakeApps) GetByID(_ context.Context, id uuid.UUID) (appsrepo.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return appsrepo.Application{}, appsrepo.ErrNotFound
	}
	return app, nil
}

func (f *fakeApps) SetScore(_ context.Context, id uuid.UUID, score int, profileStrength string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores[id] = score
	f.strength[id] = profileStrength
	return nil
}

func (f *fakeApps) SetResumeText(_ context.Context, id uuid.UUID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts[id] = text
	return nil
}

type fakeJobs struct {
	job jobsrepo.Job
}

func (f *fakeJobs) GetByID(_ context.Context, _ uuid.UUID) (jobsrepo.Job, error) {
	return f.job, nil
}

type fakeScorer struct {
	score int
	err   error
}

func (f *fakeScorer) Score(_ context.Context, _, _, _ string) (int, string, error) {
	return f.score, "", f.err
}

type fakeParser struct {
	text string
}

func (f *fakeParser) Parse(_ context.Context, _ string) (string, error) {
	return f.text, nil
}

type fakeResumeStore struct{}

func (fakeResumeStore) PresignDownload(_ context.Context, fileKey string, _ time.Duration) (string, error) {
	return "https://storage.test/" + fileKey, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func seedApplication(apps *fakeApps, resumeText string) uuid.UUID {
	id := uuid.New()
	app := appsrepo.Application{ID: id, JobID: uuid.New()}
	if resumeText != "" {
		app.ResumeText = &resumeText
	}
	apps.apps[id] = app
	return id
}

func newTestService(apps *fakeApps) (*Service, *recordingBus) {
	bus := &recordingBus{}
	jobs := &fakeJobs{job: jobsrepo.Job{
		ID:          uuid.New(),
		Title:       "Go Engineer",
		Description: "Go engineer building Postgres services",
	}}
	return New(apps, jobs, bus, logger.New("development")), bus
}

func TestScoreApplicationRemote(t *testing.T) {
	apps := newFakeApps()
	id := seedApplication(apps, "Go engineer with Postgres experience")
	svc, bus := newTestService(apps)
	svc.SetScorer(&fakeScorer{score: 82})

	if err := svc.ScoreApplication(context.Background(), id); err != nil {
		t.Fatalf("ScoreApplication: %v", err)
	}

	if apps.scores[id] != 82 {
		t.Fatalf("score = %d, want 82", apps.scores[id])
	}
	if apps.strength[id] != "strong" {
		t.Fatalf("strength = %q, want strong", apps.strength[id])
	}
	if len(bus.events) != 1 {
		t.Fatalf("events = %d, want 1", len(bus.events))
	}
	scored, ok := bus.events[0].(events.ResumeScored)
	if !ok {
		t.Fatalf("event = %T, want ResumeScored", bus.events[0])
	}
	if scored.Fallback {
		t.Fatal("remote score flagged as fallback")
	}
}

func TestScoreApplicationFallsBack(t *testing.T) {
	apps := newFakeApps()
	id := seedApplication(apps, "Go engineer building Postgres services")
	svc, bus := newTestService(apps)
	svc.SetScorer(&fakeScorer{err: errors.New("upstream error: status 503")})

	if err := svc.ScoreApplication(context.Background(), id); err != nil {
		t.Fatalf("ScoreApplication: %v", err)
	}

	if _, ok := apps.scores[id]; !ok {
		t.Fatal("no score stored after fallback")
	}
	scored, ok := bus.events[0].(events.ResumeScored)
	if !ok {
		t.Fatalf("event = %T, want ResumeScored", bus.events[0])
	}
	if !scored.Fallback {
		t.Fatal("fallback score not flagged")
	}
}

func TestScoreApplicationNoResume(t *testing.T) {
	apps := newFakeApps()
	id := seedApplication(apps, "")
	svc, bus := newTestService(apps)

	if err := svc.ScoreApplication(context.Background(), id); err != nil {
		t.Fatalf("ScoreApplication: %v", err)
	}

	if _, ok := apps.scores[id]; ok {
		t.Fatal("score stored without resume text")
	}
	if len(bus.events) != 1 {
		t.Fatalf("events = %d, want 1", len(bus.events))
	}
	if _, ok := bus.events[0].(events.ResumeScoringFailed); !ok {
		t.Fatalf("event = %T, want ResumeScoringFailed", bus.events[0])
	}
}

func TestScoreApplicationParsesStoredDocument(t *testing.T) {
	apps := newFakeApps()
	id := seedApplication(apps, "")
	key := "resumes/abc.pdf"
	app := apps.apps[id]
	app.ResumeFileKey = &key
	apps.apps[id] = app

	svc, _ := newTestService(apps)
	svc.SetScorer(&fakeScorer{score: 55})
	svc.SetParser(&fakeParser{text: "Go engineer, Postgres services"}, fakeResumeStore{})

	if err := svc.ScoreApplication(context.Background(), id); err != nil {
		t.Fatalf("ScoreApplication: %v", err)
	}

	if apps.texts[id] == "" {
		t.Fatal("parsed resume text not cached")
	}
	if apps.scores[id] != 55 {
		t.Fatalf("score = %d, want 55", apps.scores[id])
	}
	if apps.strength[id] != "moderate" {
		t.Fatalf("strength = %q, want moderate", apps.strength[id])
	}
}
