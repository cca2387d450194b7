package adapters

import (
	"context"

	appsvc "hireflow_backend/internal/applications/service"
	offersvc "hireflow_backend/internal/offers/service"
	"hireflow_backend/internal/pipeline"

	"github.com/google/uuid"
)

// ApplicationsGateway adapts the applications service to the narrow surface
// the offers module depends on.
type ApplicationsGateway struct {
	apps *appsvc.Service
}

// NewApplicationsGateway creates the gateway adapter.
func NewApplicationsGateway(apps *appsvc.Service) *ApplicationsGateway {
	return &ApplicationsGateway{apps: apps}
}

// CurrentStage returns the application's pipeline stage.
func (a *ApplicationsGateway) CurrentStage(ctx context.Context, applicationID uuid.UUID) (pipeline.Stage, error) {
	app, err := a.apps.Get(ctx, applicationID)
	if err != nil {
		return "", err
	}
	return app.Stage, nil
}

// CandidateContact returns the candidate's name and email for outbound mail.
func (a *ApplicationsGateway) CandidateContact(ctx context.Context, applicationID uuid.UUID) (string, string, error) {
	app, err := a.apps.Get(ctx, applicationID)
	if err != nil {
		return "", "", err
	}
	return app.CandidateName, app.CandidateEmail, nil
}

// MarkOfferSent moves the application to the offer-sent stage.
func (a *ApplicationsGateway) MarkOfferSent(ctx context.Context, applicationID uuid.UUID, actor string) error {
	return a.apps.MarkOfferSent(ctx, applicationID, actor)
}

// MarkOfferAccepted moves the application to the offer-accepted stage.
func (a *ApplicationsGateway) MarkOfferAccepted(ctx context.Context, applicationID uuid.UUID, actor string) error {
	return a.apps.MarkOfferAccepted(ctx, applicationID, actor)
}

// ResolvePortal verifies portal credentials and returns the application ID.
func (a *ApplicationsGateway) ResolvePortal(ctx context.Context, rawToken, email string) (uuid.UUID, error) {
	app, err := a.apps.ResolvePortal(ctx, rawToken, email)
	if err != nil {
		return uuid.Nil, err
	}
	return app.ID, nil
}

// RecordDegraded writes a degraded-operation entry to the audit trail.
func (a *ApplicationsGateway) RecordDegraded(ctx context.Context, applicationID uuid.UUID, description string, cause error) {
	a.apps.RecordDegradedActivity(ctx, applicationID, description, cause)
}

// Compile-time check.
var _ offersvc.ApplicationGateway = (*ApplicationsGateway)(nil)
