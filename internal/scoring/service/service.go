package service

import (
	"context"
	"fmt"
	"time"

	appsrepo "hireflow_backend/internal/applications/repository"
	"hireflow_backend/internal/events"
	jobsrepo "hireflow_backend/internal/jobs/repository"
	"hireflow_backend/platform/logger"

	"github.com/google/uuid"
)

// ApplicationSource is the slice of the applications store scoring needs.
type ApplicationSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (appsrepo.Application, error)
	SetScore(ctx context.Context, id uuid.UUID, score int, profileStrength string) error
	SetResumeText(ctx context.Context, id uuid.UUID, text string) error
}

// JobSource resolves the job a resume is scored against.
type JobSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (jobsrepo.Job, error)
}

// Scorer is the external scoring collaborator.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobTitle, jobDescription string) (int, string, error)
}

// Parser turns a stored resume document into plain text.
type Parser interface {
	Parse(ctx context.Context, fileURL string) (string, error)
}

// ResumeStore presigns download access to stored resume objects.
type ResumeStore interface {
	PresignDownload(ctx context.Context, fileKey string, ttl time.Duration) (string, error)
}

// Service orchestrates background resume scoring. The scorer and parser
// are optional collaborators; when either is missing or failing, scoring
// degrades to the local keyword-overlap fallback rather than erroring the
// application.
type Service struct {
	apps   ApplicationSource
	jobs   JobSource
	scorer Scorer
	parser Parser
	store  ResumeStore
	bus    events.Bus
	log    *logger.Logger
}

func New(apps ApplicationSource, jobs JobSource, bus events.Bus, log *logger.Logger) *Service {
	return &Service{apps: apps, jobs: jobs, bus: bus, log: log}
}

// SetScorer injects the scoring API client.
func (s *Service) SetScorer(scorer Scorer) {
	s.scorer = scorer
}

// SetParser injects the document parser client and the object store that
// presigns resume downloads for it.
func (s *Service) SetParser(parser Parser, store ResumeStore) {
	s.parser = parser
	s.store = store
}

// ScoreApplication scores one application's resume against its job. It is
// idempotent; rescoring overwrites the previous score.
func (s *Service) ScoreApplication(ctx context.Context, applicationID uuid.UUID) error {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("load application: %w", err)
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}

	resumeText := s.resolveResumeText(ctx, app)
	if resumeText == "" {
		s.publishFailure(ctx, applicationID, "no resume text available")
		return nil
	}

	score, strength, fallback := s.score(ctx, resumeText, job)

	if err := s.apps.SetScore(ctx, applicationID, score, strength); err != nil {
		return fmt.Errorf("store score: %w", err)
	}

	s.log.Info("resume scored",
		"applicationId", applicationID, "score", score,
		"profileStrength", strength, "fallback", fallback)
	s.bus.Publish(ctx, events.ResumeScored{
		BaseEvent:       events.NewBaseEvent(),
		ApplicationID:   applicationID,
		Score:           score,
		ProfileStrength: strength,
		Fallback:        fallback,
	})
	return nil
}

// resolveResumeText returns stored text, or parses the stored document
// when a parser is wired. Parse results are cached on the application.
func (s *Service) resolveResumeText(ctx context.Context, app appsrepo.Application) string {
	if app.ResumeText != nil && *app.ResumeText != "" {
		return *app.ResumeText
	}
	if app.ResumeFileKey == nil || s.parser == nil || s.store == nil {
		return ""
	}

	fileURL, err := s.store.PresignDownload(ctx, *app.ResumeFileKey, 15*time.Minute)
	if err != nil {
		s.log.Warn("failed to presign resume for parsing", "applicationId", app.ID, "error", err)
		return ""
	}
	text, err := s.parser.Parse(ctx, fileURL)
	if err != nil {
		s.log.Warn("resume parsing failed", "applicationId", app.ID, "error", err)
		return ""
	}

	if err := s.apps.SetResumeText(ctx, app.ID, text); err != nil {
		s.log.Warn("failed to cache resume text", "applicationId", app.ID, "error", err)
	}
	return text
}

func (s *Service) score(ctx context.Context, resumeText string, job jobsrepo.Job) (int, string, bool) {
	if s.scorer != nil {
		score, strength, err := s.scorer.Score(ctx, resumeText, job.Title, job.Description)
		if err == nil {
			if strength == "" {
				strength = StrengthFor(score)
			}
			return score, strength, false
		}
		s.log.Warn("scoring collaborator failed, using keyword fallback", "error", err)
	}

	score := KeywordOverlapScore(resumeText, job.Title+" "+job.Description)
	return score, StrengthFor(score), true
}

func (s *Service) publishFailure(ctx context.Context, applicationID uuid.UUID, message string) {
	s.log.Warn("resume scoring skipped", "applicationId", applicationID, "reason", message)
	s.bus.Publish(ctx, events.ResumeScoringFailed{
		BaseEvent:     events.NewBaseEvent(),
		ApplicationID: applicationID,
		ErrorMessage:  message,
	})
}
