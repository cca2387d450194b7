package service

import (
	"context"
	"errors"

	"hireflow_backend/internal/offers/repository"
	"hireflow_backend/platform/apperr"
)

// PortalViewOffer returns the application's active offer for the candidate
// and marks a sent offer as viewed. The viewed stamp is best-effort: losing
// a race against another mutation never fails the read.
func (s *Service) PortalViewOffer(ctx context.Context, rawToken, email string) (repository.Offer, error) {
	applicationID, err := s.apps.ResolvePortal(ctx, rawToken, email)
	if err != nil {
		return repository.Offer{}, err
	}

	offer, err := s.store.GetActiveByApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Offer{}, apperr.NotFound("no active offer")
		}
		return repository.Offer{}, apperr.Internal("failed to load offer")
	}
	if offer.Status == repository.StatusDraft {
		// drafts are invisible to the candidate
		return repository.Offer{}, apperr.NotFound("no active offer")
	}

	if offer.Status == repository.StatusSent {
		viewed, err := s.store.UpdateStatus(ctx, repository.UpdateStatusParams{
			OfferID:        offer.ID,
			ExpectedStatus: repository.StatusSent,
			NewStatus:      repository.StatusViewed,
			StampViewedAt:  true,
		})
		if err == nil {
			return viewed, nil
		}
		if !errors.Is(err, repository.ErrStatusConflict) {
			s.log.Warn("failed to mark offer viewed", "offerId", offer.ID, "error", err)
		}
	}
	return offer, nil
}

// PortalRespond records the candidate's accept or decline through the
// portal door. The responder attributed to the negotiation entry is always
// "candidate".
func (s *Service) PortalRespond(ctx context.Context, rawToken, email, response, details string) (repository.Offer, error) {
	applicationID, err := s.apps.ResolvePortal(ctx, rawToken, email)
	if err != nil {
		return repository.Offer{}, err
	}

	offer, err := s.store.GetActiveByApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Offer{}, apperr.NotFound("no active offer")
		}
		return repository.Offer{}, apperr.Internal("failed to load offer")
	}
	if offer.Status == repository.StatusDraft {
		return repository.Offer{}, apperr.NotFound("no active offer")
	}

	return s.Respond(ctx, offer.ID, response, "candidate", details)
}
