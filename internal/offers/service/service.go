package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hireflow_backend/internal/events"
	"hireflow_backend/internal/offers/repository"
	"hireflow_backend/internal/pipeline"
	"hireflow_backend/platform/apperr"
	"hireflow_backend/platform/logger"
	"hireflow_backend/platform/sanitize"

	"github.com/google/uuid"
)

// ApplicationGateway is the narrow surface the offer lifecycle needs from
// the applications context. Wired through an adapter at the composition
// root so the two modules stay decoupled.
type ApplicationGateway interface {
	CurrentStage(ctx context.Context, applicationID uuid.UUID) (pipeline.Stage, error)
	CandidateContact(ctx context.Context, applicationID uuid.UUID) (name, email string, err error)
	MarkOfferSent(ctx context.Context, applicationID uuid.UUID, actor string) error
	MarkOfferAccepted(ctx context.Context, applicationID uuid.UUID, actor string) error
	ResolvePortal(ctx context.Context, rawToken, email string) (uuid.UUID, error)
	RecordDegraded(ctx context.Context, applicationID uuid.UUID, description string, cause error)
}

type Service struct {
	store repository.Store
	apps  ApplicationGateway
	bus   events.Bus
	log   *logger.Logger
}

func New(store repository.Store, apps ApplicationGateway, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, apps: apps, bus: bus, log: log}
}

// CreateParams carries validated offer terms from the console.
type CreateParams struct {
	ApplicationID     uuid.UUID
	PositionTitle     string
	SalaryAmountCents *int64
	SalaryCurrency    string
	StartDate         *time.Time
	ExpiresAt         *time.Time
	Attachment        repository.Attachment
	SendImmediately   bool
	Actor             string
}

// Create registers a new offer as draft, or sends it right away when the
// immediate-send flag is set. At most one non-terminal offer may exist per
// application; a second one is refused with Conflict.
func (s *Service) Create(ctx context.Context, params CreateParams) (repository.Offer, error) {
	stage, err := s.apps.CurrentStage(ctx, params.ApplicationID)
	if err != nil {
		return repository.Offer{}, err
	}
	if pipeline.IsAbsorbing(stage) {
		return repository.Offer{}, apperr.InvalidTransition(
			fmt.Sprintf("application is %s and cannot receive an offer", stage))
	}

	if _, err := s.store.GetActiveByApplication(ctx, params.ApplicationID); err == nil {
		return repository.Offer{}, apperr.Conflict("application already has an active offer")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return repository.Offer{}, apperr.Internal("failed to check active offers")
	}

	create := repository.CreateParams{
		ApplicationID:     params.ApplicationID,
		Status:            repository.StatusDraft,
		PositionTitle:     sanitize.Text(params.PositionTitle),
		SalaryAmountCents: params.SalaryAmountCents,
		SalaryCurrency:    params.SalaryCurrency,
		StartDate:         params.StartDate,
		ExpiresAt:         params.ExpiresAt,
		Attachment:        params.Attachment,
		CreatedBy:         params.Actor,
	}
	if params.SendImmediately {
		now := time.Now().UTC()
		create.Status = repository.StatusSent
		create.SentAt = &now
		create.InitialEntry = &repository.NegotiationEntry{
			Date:   now,
			Action: "sent",
			By:     params.Actor,
		}
	}

	offer, err := s.store.Create(ctx, create)
	if err != nil {
		return repository.Offer{}, apperr.Internal("failed to create offer")
	}

	if params.SendImmediately {
		s.afterSend(ctx, offer, params.Actor)
	}
	return offer, nil
}

// Send transitions a draft offer to sent and moves the application to the
// offer-sent stage.
func (s *Service) Send(ctx context.Context, offerID uuid.UUID, actor string) (repository.Offer, error) {
	current, err := s.getOffer(ctx, offerID)
	if err != nil {
		return repository.Offer{}, err
	}
	if current.Status.IsTerminal() {
		return repository.Offer{}, apperr.InvalidOfferState(
			fmt.Sprintf("offer is %s and cannot be sent", current.Status))
	}
	if current.Status != repository.StatusDraft {
		return repository.Offer{}, apperr.InvalidOfferState("only draft offers can be sent")
	}

	now := time.Now().UTC()
	offer, err := s.updateStatus(ctx, repository.UpdateStatusParams{
		OfferID:        offerID,
		ExpectedStatus: repository.StatusDraft,
		NewStatus:      repository.StatusSent,
		StampSentAt:    true,
		Entry:          &repository.NegotiationEntry{Date: now, Action: "sent", By: actor},
	})
	if err != nil {
		return repository.Offer{}, err
	}

	s.afterSend(ctx, offer, actor)
	return offer, nil
}

// afterSend moves the application stage and publishes the sent event. The
// offer is already committed as sent; a failing stage move is recorded in
// the audit trail rather than unwinding the send.
func (s *Service) afterSend(ctx context.Context, offer repository.Offer, actor string) {
	if err := s.apps.MarkOfferSent(ctx, offer.ApplicationID, actor); err != nil {
		s.log.DownstreamDegraded("applications", "mark_offer_sent", err)
		s.apps.RecordDegraded(ctx, offer.ApplicationID,
			"offer sent but application stage could not be updated", err)
	}

	name, email, err := s.apps.CandidateContact(ctx, offer.ApplicationID)
	if err != nil {
		s.log.Warn("failed to resolve candidate contact for offer event",
			"offerId", offer.ID, "error", err)
		return
	}
	s.bus.Publish(ctx, events.OfferSent{
		BaseEvent:      events.NewBaseEvent(),
		OfferID:        offer.ID,
		ApplicationID:  offer.ApplicationID,
		CandidateName:  name,
		CandidateEmail: email,
		PositionTitle:  offer.PositionTitle,
		Actor:          actor,
	})
}

// Respond records the candidate's accept or decline. Accept also moves the
// application to offer-accepted; decline deliberately leaves the
// application at offer-sent so a recruiter can decide whether to re-offer.
func (s *Service) Respond(ctx context.Context, offerID uuid.UUID, response, responder, details string) (repository.Offer, error) {
	if response != "accept" && response != "decline" {
		return repository.Offer{}, apperr.Validation("response must be accept or decline")
	}

	current, err := s.getOffer(ctx, offerID)
	if err != nil {
		return repository.Offer{}, err
	}
	if current.Status.IsTerminal() {
		return repository.Offer{}, apperr.InvalidOfferState(
			fmt.Sprintf("offer is %s and cannot be responded to", current.Status))
	}
	if current.Status != repository.StatusSent && current.Status != repository.StatusViewed {
		return repository.Offer{}, apperr.InvalidOfferState(
			fmt.Sprintf("offer is %s and is not awaiting a response", current.Status))
	}

	newStatus := repository.StatusAccepted
	if response == "decline" {
		newStatus = repository.StatusDeclined
	}

	now := time.Now().UTC()
	offer, err := s.updateStatus(ctx, repository.UpdateStatusParams{
		OfferID:         offerID,
		ExpectedStatus:  current.Status,
		NewStatus:       newStatus,
		StampResponseAt: true,
		Entry: &repository.NegotiationEntry{
			Date:    now,
			Action:  response,
			Details: sanitize.Text(details),
			By:      responder,
		},
	})
	if err != nil {
		return repository.Offer{}, err
	}

	if newStatus == repository.StatusAccepted {
		if err := s.apps.MarkOfferAccepted(ctx, offer.ApplicationID, responder); err != nil {
			s.log.DownstreamDegraded("applications", "mark_offer_accepted", err)
			s.apps.RecordDegraded(ctx, offer.ApplicationID,
				"offer accepted but application stage could not be updated", err)
		}
	}

	name, email, contactErr := s.apps.CandidateContact(ctx, offer.ApplicationID)
	if contactErr == nil {
		s.bus.Publish(ctx, events.OfferResponded{
			BaseEvent:      events.NewBaseEvent(),
			OfferID:        offer.ID,
			ApplicationID:  offer.ApplicationID,
			CandidateName:  name,
			CandidateEmail: email,
			Response:       response,
			Details:        details,
		})
	}
	return offer, nil
}

// administrative statuses the console may force.
var adminStatuses = map[repository.Status]bool{
	repository.StatusNegotiating: true,
	repository.StatusExpired:     true,
	repository.StatusWithdrawn:   true,
	repository.StatusRejected:    true,
}

// SetStatus is the console-only administrative transition. It always
// appends a negotiation entry recording the prior and new status.
func (s *Service) SetStatus(ctx context.Context, offerID uuid.UUID, status repository.Status, actor, notes string) (repository.Offer, error) {
	if !adminStatuses[status] {
		return repository.Offer{}, apperr.Validation(
			fmt.Sprintf("status %q is not an administrative offer status", status))
	}

	current, err := s.getOffer(ctx, offerID)
	if err != nil {
		return repository.Offer{}, err
	}
	if current.Status.IsTerminal() {
		return repository.Offer{}, apperr.InvalidOfferState(
			fmt.Sprintf("offer is %s and cannot be modified", current.Status))
	}

	now := time.Now().UTC()
	offer, err := s.updateStatus(ctx, repository.UpdateStatusParams{
		OfferID:        offerID,
		ExpectedStatus: current.Status,
		NewStatus:      status,
		Entry: &repository.NegotiationEntry{
			Date:    now,
			Action:  fmt.Sprintf("status_changed:%s->%s", current.Status, status),
			Details: sanitize.Text(notes),
			By:      actor,
		},
	})
	if err != nil {
		return repository.Offer{}, err
	}

	s.bus.Publish(ctx, events.OfferStatusChanged{
		BaseEvent:     events.NewBaseEvent(),
		OfferID:       offer.ID,
		ApplicationID: offer.ApplicationID,
		OldStatus:     string(current.Status),
		NewStatus:     string(status),
		Actor:         actor,
	})
	return offer, nil
}

func (s *Service) Get(ctx context.Context, offerID uuid.UUID) (repository.Offer, error) {
	return s.getOffer(ctx, offerID)
}

func (s *Service) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]repository.Offer, error) {
	offers, err := s.store.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, apperr.Internal("failed to list offers")
	}
	return offers, nil
}

func (s *Service) getOffer(ctx context.Context, offerID uuid.UUID) (repository.Offer, error) {
	offer, err := s.store.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Offer{}, apperr.NotFound("offer not found")
		}
		return repository.Offer{}, apperr.Internal("failed to load offer")
	}
	return offer, nil
}

func (s *Service) updateStatus(ctx context.Context, params repository.UpdateStatusParams) (repository.Offer, error) {
	offer, err := s.store.UpdateStatus(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return repository.Offer{}, apperr.NotFound("offer not found")
		case errors.Is(err, repository.ErrStatusConflict):
			return repository.Offer{}, apperr.Conflict("offer was modified concurrently")
		default:
			return repository.Offer{}, apperr.Internal("failed to update offer")
		}
	}
	return offer, nil
}
