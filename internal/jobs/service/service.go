package service

import (
	"context"
	"errors"

	"hireflow_backend/internal/jobs/repository"
	"hireflow_backend/platform/apperr"
	"hireflow_backend/platform/logger"
	"hireflow_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service implements the job opening operations.
type Service struct {
	store repository.Store
	log   *logger.Logger
}

func New(store repository.Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// CreateParams carries validated job fields from the console.
type CreateParams struct {
	Title       string
	Department  string
	Location    string
	Description string
	Actor       string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (repository.Job, error) {
	job, err := s.store.Create(ctx, repository.CreateParams{
		Title:       sanitize.Text(params.Title),
		Department:  sanitize.Text(params.Department),
		Location:    sanitize.Text(params.Location),
		Description: sanitize.Text(params.Description),
		CreatedBy:   params.Actor,
	})
	if err != nil {
		return repository.Job{}, apperr.Internal("failed to create job")
	}

	s.log.Info("job created", "jobId", job.ID, "title", job.Title, "actor", params.Actor)
	return job, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Job, error) {
	job, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Job{}, apperr.NotFound("job not found")
		}
		return repository.Job{}, apperr.Internal("failed to load job")
	}
	return job, nil
}

func (s *Service) List(ctx context.Context, openOnly bool) ([]repository.Job, error) {
	jobs, err := s.store.List(ctx, openOnly)
	if err != nil {
		return nil, apperr.Internal("failed to list jobs")
	}
	return jobs, nil
}

// SetOpen opens or closes a job for new applications.
func (s *Service) SetOpen(ctx context.Context, id uuid.UUID, open bool, actor string) (repository.Job, error) {
	job, err := s.store.SetOpen(ctx, id, open)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Job{}, apperr.NotFound("job not found")
		}
		return repository.Job{}, apperr.Internal("failed to update job")
	}

	s.log.Info("job availability changed", "jobId", job.ID, "isOpen", open, "actor", actor)
	return job, nil
}
