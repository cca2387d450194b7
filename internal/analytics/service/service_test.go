package service

import (
	"context"
	"errors"
	"testing"

	"hireflow_backend/internal/analytics/repository"
	"hireflow_backend/internal/pipeline"
	"hireflow_backend/platform/apperr"
	"hireflow_backend/platform/logger"
)

type fakeStore struct {
	funnel    []repository.StageCount
	tth       repository.TimeToHire
	offers    repository.OfferOutcomes
	offersErr error
}

func (f *fakeStore) StageFunnel(context.Context) ([]repository.StageCount, error) {
	return f.funnel, nil
}

func (f *fakeStore) TimeToHire(context.Context) (repository.TimeToHire, error) {
	return f.tth, nil
}

func (f *fakeStore) OfferOutcomes(context.Context) (repository.OfferOutcomes, error) {
	return f.offers, f.offersErr
}

func TestGetOverview(t *testing.T) {
	store := &fakeStore{
		funnel: []repository.StageCount{
			{Stage: pipeline.StageShortlisting, Count: 10},
			{Stage: pipeline.StageHired, Count: 2},
		},
		tth:    repository.TimeToHire{HiredCount: 2, AverageDays: 21.5, MedianDays: 21.5},
		offers: repository.OfferOutcomes{Sent: 5, Accepted: 3, Declined: 1, Pending: 1},
	}
	svc := New(store, logger.New("development"))

	overview, err := svc.GetOverview(context.Background())
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if len(overview.Funnel) != 2 {
		t.Fatalf("funnel buckets = %d, want 2", len(overview.Funnel))
	}
	if overview.OfferAcceptRate != 0.75 {
		t.Fatalf("acceptance rate = %v, want 0.75", overview.OfferAcceptRate)
	}
}

func TestGetOverviewPropagatesFailure(t *testing.T) {
	store := &fakeStore{offersErr: errors.New("connection refused")}
	svc := New(store, logger.New("development"))

	_, err := svc.GetOverview(context.Background())
	if apperr.GetKind(err) != apperr.KindInternal {
		t.Fatalf("kind = %v, want KindInternal", apperr.GetKind(err))
	}
}

func TestAcceptanceRate(t *testing.T) {
	cases := []struct {
		name string
		in   repository.OfferOutcomes
		want float64
	}{
		{"no decided offers", repository.OfferOutcomes{Pending: 3}, 0},
		{"all accepted", repository.OfferOutcomes{Accepted: 4}, 1},
		{"mixed", repository.OfferOutcomes{Accepted: 1, Declined: 1, Expired: 2}, 0.25},
	}
	for _, tc := range cases {
		if got := AcceptanceRate(tc.in); got != tc.want {
			t.Errorf("%s: rate = %v, want %v", tc.name, got, tc.want)
		}
	}
}
