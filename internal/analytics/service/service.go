package service

import (
	"context"

	"hireflow_backend/internal/analytics/repository"
	"hireflow_backend/platform/apperr"
	"hireflow_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Store defines the reporting queries the service fans out to.
type Store interface {
	StageFunnel(ctx context.Context) ([]repository.StageCount, error)
	TimeToHire(ctx context.Context) (repository.TimeToHire, error)
	OfferOutcomes(ctx context.Context) (repository.OfferOutcomes, error)
}

// Overview is the combined reporting snapshot served to the console.
type Overview struct {
	Funnel          []repository.StageCount
	TimeToHire      repository.TimeToHire
	Offers          repository.OfferOutcomes
	OfferAcceptRate float64
}

// Service serves read-only hiring analytics.
type Service struct {
	store Store
	log   *logger.Logger
}

func New(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// GetOverview runs the three reporting queries concurrently and combines
// them into one snapshot.
func (s *Service) GetOverview(ctx context.Context) (Overview, error) {
	var out Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		funnel, err := s.store.StageFunnel(gctx)
		out.Funnel = funnel
		return err
	})
	g.Go(func() error {
		tth, err := s.store.TimeToHire(gctx)
		out.TimeToHire = tth
		return err
	})
	g.Go(func() error {
		offers, err := s.store.OfferOutcomes(gctx)
		out.Offers = offers
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("analytics overview failed", "error", err)
		return Overview{}, apperr.Internal("failed to compute analytics")
	}

	out.OfferAcceptRate = AcceptanceRate(out.Offers)
	return out, nil
}

// AcceptanceRate is the share of decided offers that were accepted.
// Offers still awaiting a response are excluded from the denominator.
func AcceptanceRate(o repository.OfferOutcomes) float64 {
	decided := o.Accepted + o.Declined + o.Rejected + o.Expired + o.Withdrawn
	if decided == 0 {
		return 0
	}
	return float64(o.Accepted) / float64(decided)
}
