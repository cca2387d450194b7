package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"hireflow_backend/internal/applications/repository"
	"hireflow_backend/internal/auth/token"
	"hireflow_backend/internal/pipeline"
	"hireflow_backend/platform/apperr"
)

const msgPortalUnauthorized = "invalid portal credentials"

// PortalStatusView is the candidate-safe rendering of an application.
// Stage identifiers never leak; only the enumerated label, status and
// description tables are exposed.
type PortalStatusView struct {
	Label       string
	Status      string
	Description string
	AppliedAt   time.Time
	LastUpdated time.Time
	History     []PortalHistoryItem
	CanWithdraw bool
}

// PortalHistoryItem is one candidate-visible ledger interval.
type PortalHistoryItem struct {
	Label        string
	EnteredAt    time.Time
	ExitedAt     *time.Time
	DurationDays *int
}

// authorizePortal resolves a portal token and verifies the shared-secret
// email match. Token miss and email mismatch are indistinguishable.
func (s *Service) authorizePortal(ctx context.Context, rawToken, email string) (repository.Application, error) {
	if rawToken == "" || email == "" {
		return repository.Application{}, apperr.Unauthorized(msgPortalUnauthorized)
	}

	app, err := s.store.GetByPortalTokenHash(ctx, token.Hash(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Application{}, apperr.Unauthorized(msgPortalUnauthorized)
		}
		return repository.Application{}, apperr.Internal("storage failure")
	}

	if !strings.EqualFold(strings.TrimSpace(email), app.CandidateEmail) {
		return repository.Application{}, apperr.Unauthorized(msgPortalUnauthorized)
	}
	return app, nil
}

// ResolvePortal authorizes a portal token/email pair and returns the
// application it refers to, for modules serving their own portal routes.
func (s *Service) ResolvePortal(ctx context.Context, rawToken, email string) (repository.Application, error) {
	return s.authorizePortal(ctx, rawToken, email)
}

// PortalStatus renders the candidate-safe status view.
func (s *Service) PortalStatus(ctx context.Context, rawToken, email string) (PortalStatusView, error) {
	app, err := s.authorizePortal(ctx, rawToken, email)
	if err != nil {
		return PortalStatusView{}, err
	}

	view := pipeline.Project(app.Stage)
	out := PortalStatusView{
		Label:       view.Label,
		Status:      string(view.Status),
		Description: view.Description,
		AppliedAt:   app.CreatedAt,
		LastUpdated: app.LastActivityAt,
		CanWithdraw: pipeline.CanWithdraw(app.Stage),
		History:     make([]PortalHistoryItem, 0, len(app.StageHistory)),
	}
	for _, entry := range app.StageHistory {
		out.History = append(out.History, PortalHistoryItem{
			Label:        pipeline.Label(entry.Stage),
			EnteredAt:    entry.EnteredAt,
			ExitedAt:     entry.ExitedAt,
			DurationDays: entry.DurationDays,
		})
	}
	return out, nil
}

// PortalWithdraw lets the candidate withdraw their own application.
func (s *Service) PortalWithdraw(ctx context.Context, rawToken, email, reason string) error {
	app, err := s.authorizePortal(ctx, rawToken, email)
	if err != nil {
		return err
	}
	_, err = s.Withdraw(ctx, app.ID, reason, "candidate")
	return err
}
