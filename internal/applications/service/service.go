package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hireflow_backend/internal/applications/repository"
	"hireflow_backend/internal/auth/token"
	"hireflow_backend/internal/events"
	"hireflow_backend/internal/pipeline"
	"hireflow_backend/platform/apperr"
	"hireflow_backend/platform/logger"
	"hireflow_backend/platform/phone"
	"hireflow_backend/platform/sanitize"

	"github.com/google/uuid"
)

// ScoringEnqueuer schedules background resume scoring after a commit.
type ScoringEnqueuer interface {
	EnqueueResumeScoring(ctx context.Context, applicationID uuid.UUID) error
}

type Service struct {
	store    repository.Store
	bus      events.Bus
	log      *logger.Logger
	enqueuer ScoringEnqueuer
}

func New(store repository.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, log: log}
}

// SetScoringEnqueuer injects the background task client. Optional: without
// it, applications are created without scoring.
func (s *Service) SetScoringEnqueuer(enqueuer ScoringEnqueuer) {
	s.enqueuer = enqueuer
}

// CreateParams carries validated intake data.
type CreateParams struct {
	JobID          uuid.UUID
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	ResumeFileKey  string
}

// Create registers a new application at the first pipeline stage. Scoring
// and the confirmation email run detached after the commit; their failure
// never rolls back the creation.
func (s *Service) Create(ctx context.Context, params CreateParams) (repository.Application, error) {
	var phonePtr *string
	if params.CandidatePhone != "" {
		normalized := phone.NormalizeE164(params.CandidatePhone)
		phonePtr = &normalized
	}

	rawToken, err := token.Generate(token.PortalTokenBytes)
	if err != nil {
		return repository.Application{}, apperr.Internal("failed to generate portal token")
	}

	var resumeKey *string
	if params.ResumeFileKey != "" {
		resumeKey = &params.ResumeFileKey
	}

	app, err := s.store.Create(ctx, repository.CreateParams{
		JobID:           params.JobID,
		CandidateName:   sanitize.Text(params.CandidateName),
		CandidateEmail:  strings.ToLower(strings.TrimSpace(params.CandidateEmail)),
		CandidatePhone:  phonePtr,
		ResumeFileKey:   resumeKey,
		PortalTokenHash: token.Hash(rawToken),
	})
	if err != nil {
		return repository.Application{}, apperr.Internal("failed to create application")
	}

	s.bus.Publish(ctx, events.ApplicationCreated{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  app.ID,
		JobID:          app.JobID,
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		ResumeFileKey:  params.ResumeFileKey,
		PortalToken:    rawToken,
	})

	if s.enqueuer != nil && resumeKey != nil {
		if err := s.enqueuer.EnqueueResumeScoring(ctx, app.ID); err != nil {
			s.log.DownstreamDegraded("scheduler", "enqueue_resume_scoring", err)
			s.recordDegraded(ctx, app.ID, "resume scoring could not be scheduled", err)
		}
	}

	return app, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Application, error) {
	app, err := s.store.GetByID(ctx, id)
	if err != nil {
		return repository.Application{}, mapStoreErr(err)
	}
	return app, nil
}

func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]repository.Application, int, error) {
	if filter.Stage != nil && !pipeline.IsKnown(*filter.Stage) {
		return nil, 0, apperr.Validation("unknown stage filter")
	}
	apps, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list applications")
	}
	return apps, total, nil
}

// MoveToStage validates and applies a stage transition. The store write is
// guarded by a compare-and-set on the stage the caller observed; a losing
// concurrent writer receives Conflict.
func (s *Service) MoveToStage(ctx context.Context, id uuid.UUID, target pipeline.Stage, actor string, notes *string) (repository.Application, error) {
	if !pipeline.IsKnown(target) {
		return repository.Application{}, apperr.Validation(fmt.Sprintf("unknown stage %q", target))
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return repository.Application{}, mapStoreErr(err)
	}
	if pipeline.IsAbsorbing(current.Stage) {
		return repository.Application{}, apperr.InvalidTransition(
			fmt.Sprintf("application is %s and cannot move further", current.Stage))
	}

	app, err := s.transition(ctx, repository.TransitionParams{
		ApplicationID:       id,
		ExpectedStage:       current.Stage,
		TargetStage:         target,
		TargetStatus:        pipeline.ProjectStatus(target),
		Actor:               actor,
		Notes:               sanitize.TextPtr(notes),
		Action:              pipeline.ActionMoved,
		ActivityAction:      "stage_changed",
		ActivityDescription: fmt.Sprintf("moved from %s to %s by %s", current.Stage, target, actor),
		ActivityMetadata: map[string]any{
			"fromStage": string(current.Stage),
			"toStage":   string(target),
			"actor":     actor,
		},
	})
	if err != nil {
		return repository.Application{}, err
	}

	s.log.StageTransition(id.String(), string(current.Stage), string(target), actor)
	s.bus.Publish(ctx, events.StageChanged{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  app.ID,
		JobID:          app.JobID,
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		FromStage:      string(current.Stage),
		ToStage:        string(target),
		Actor:          actor,
	})
	return app, nil
}

// Reject forces the rejected stage, persisting the reason and a
// rejection-flavored comment under the same commit.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason, actor string) (repository.Application, error) {
	reason = sanitize.Text(reason)
	if reason == "" {
		return repository.Application{}, apperr.Validation("rejection reason is required")
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return repository.Application{}, mapStoreErr(err)
	}
	if pipeline.IsAbsorbing(current.Stage) {
		return repository.Application{}, apperr.InvalidTransition(
			fmt.Sprintf("application is %s and cannot be rejected", current.Stage))
	}

	app, err := s.transition(ctx, repository.TransitionParams{
		ApplicationID:       id,
		ExpectedStage:       current.Stage,
		TargetStage:         pipeline.StageRejected,
		TargetStatus:        pipeline.ProjectStatus(pipeline.StageRejected),
		Actor:               actor,
		Action:              pipeline.ActionRejected,
		RejectionReason:     &reason,
		ActivityAction:      "application_rejected",
		ActivityDescription: fmt.Sprintf("rejected by %s: %s", actor, reason),
		ActivityMetadata: map[string]any{
			"fromStage": string(current.Stage),
			"reason":    reason,
			"actor":     actor,
		},
	})
	if err != nil {
		return repository.Application{}, err
	}

	s.log.StageTransition(id.String(), string(current.Stage), string(pipeline.StageRejected), actor)
	s.bus.Publish(ctx, events.ApplicationRejected{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  app.ID,
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		Reason:         reason,
		Actor:          actor,
	})
	return app, nil
}

// Withdraw forces the withdrawn stage on behalf of the candidate. Forbidden
// once the application is hired, rejected or an offer was accepted.
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID, reason, actor string) (repository.Application, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return repository.Application{}, mapStoreErr(err)
	}
	if !pipeline.CanWithdraw(current.Stage) {
		return repository.Application{}, apperr.InvalidTransition(
			fmt.Sprintf("withdrawal is not permitted from stage %s", current.Stage))
	}

	reason = sanitize.Text(reason)
	var notes *string
	if reason != "" {
		notes = &reason
	}

	app, err := s.transition(ctx, repository.TransitionParams{
		ApplicationID:       id,
		ExpectedStage:       current.Stage,
		TargetStage:         pipeline.StageWithdrawn,
		TargetStatus:        pipeline.ProjectStatus(pipeline.StageWithdrawn),
		Actor:               actor,
		Notes:               notes,
		Action:              pipeline.ActionWithdrawn,
		ActivityAction:      "application_withdrawn",
		ActivityDescription: fmt.Sprintf("withdrawn by %s", actor),
		ActivityMetadata: map[string]any{
			"fromStage": string(current.Stage),
			"reason":    reason,
		},
	})
	if err != nil {
		return repository.Application{}, err
	}

	s.log.StageTransition(id.String(), string(current.Stage), string(pipeline.StageWithdrawn), actor)
	s.bus.Publish(ctx, events.ApplicationWithdrawn{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  app.ID,
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		Reason:         reason,
	})
	return app, nil
}

// MarkOfferSent moves the application to offer-sent on behalf of the offer
// lifecycle. Already being at offer-sent is tolerated so a re-offer after a
// decline needs no stage change.
func (s *Service) MarkOfferSent(ctx context.Context, id uuid.UUID, actor string) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if current.Stage == pipeline.StageOfferSent {
		return nil
	}
	if pipeline.IsAbsorbing(current.Stage) {
		return apperr.InvalidTransition(
			fmt.Sprintf("application is %s and cannot receive an offer", current.Stage))
	}

	_, err = s.MoveToStage(ctx, id, pipeline.StageOfferSent, actor, nil)
	return err
}

// MarkOfferAccepted moves the application to offer-accepted when the
// candidate accepts. The persisted status becomes hired directly, ahead of
// the hired stage, so reporting reflects the accepted hire immediately.
func (s *Service) MarkOfferAccepted(ctx context.Context, id uuid.UUID, actor string) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if pipeline.IsAbsorbing(current.Stage) {
		return apperr.InvalidTransition(
			fmt.Sprintf("application is %s and cannot accept an offer", current.Stage))
	}

	app, err := s.transition(ctx, repository.TransitionParams{
		ApplicationID:       id,
		ExpectedStage:       current.Stage,
		TargetStage:         pipeline.StageOfferAccepted,
		TargetStatus:        pipeline.StatusHired,
		Actor:               actor,
		Action:              pipeline.ActionMoved,
		ActivityAction:      "offer_accepted",
		ActivityDescription: fmt.Sprintf("offer accepted by %s", actor),
		ActivityMetadata: map[string]any{
			"fromStage": string(current.Stage),
		},
	})
	if err != nil {
		return err
	}

	s.log.StageTransition(id.String(), string(current.Stage), string(pipeline.StageOfferAccepted), actor)
	s.bus.Publish(ctx, events.StageChanged{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  app.ID,
		JobID:          app.JobID,
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		FromStage:      string(current.Stage),
		ToStage:        string(pipeline.StageOfferAccepted),
		Actor:          actor,
	})
	return nil
}

// RecordDegradedActivity exposes the audit trail for collaborators whose
// failures are swallowed rather than surfaced.
func (s *Service) RecordDegradedActivity(ctx context.Context, id uuid.UUID, description string, cause error) {
	s.recordDegraded(ctx, id, description, cause)
}

func (s *Service) transition(ctx context.Context, params repository.TransitionParams) (repository.Application, error) {
	app, err := s.store.TransitionStage(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return repository.Application{}, apperr.NotFound("application not found")
		case errors.Is(err, repository.ErrStageConflict):
			return repository.Application{}, apperr.Conflict("application was modified concurrently")
		default:
			return repository.Application{}, apperr.Internal("failed to apply transition")
		}
	}
	return app, nil
}

// Assign sets or clears the responsible recruiter.
func (s *Service) Assign(ctx context.Context, id uuid.UUID, recruiterID *uuid.UUID, actor string) error {
	if err := s.store.Assign(ctx, id, recruiterID, actor); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func (s *Service) AddComment(ctx context.Context, id uuid.UUID, authorName, body string) (repository.Comment, error) {
	body = sanitize.Text(body)
	if body == "" {
		return repository.Comment{}, apperr.Validation("comment body is required")
	}
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return repository.Comment{}, mapStoreErr(err)
	}
	comment, err := s.store.AddComment(ctx, id, authorName, body)
	if err != nil {
		return repository.Comment{}, apperr.Internal("failed to add comment")
	}
	return comment, nil
}

func (s *Service) ListActivity(ctx context.Context, id uuid.UUID, limit int) ([]repository.ActivityEntry, error) {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, mapStoreErr(err)
	}
	entries, err := s.store.ListActivity(ctx, id, limit)
	if err != nil {
		return nil, apperr.Internal("failed to list activity")
	}
	return entries, nil
}

func (s *Service) recordDegraded(ctx context.Context, id uuid.UUID, description string, cause error) {
	if err := s.store.RecordActivity(ctx, id, "downstream_degraded", description,
		map[string]any{"error": cause.Error()}); err != nil {
		s.log.Warn("failed to record degraded activity", "applicationId", id, "error", err)
	}
}

func mapStoreErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("application not found")
	}
	return apperr.Internal("storage failure")
}
