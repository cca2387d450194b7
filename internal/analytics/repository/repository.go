package repository

import (
	"context"
	"fmt"

	"hireflow_backend/internal/pipeline"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StageCount is one funnel bucket.
type StageCount struct {
	Stage pipeline.Stage
	Count int
}

// TimeToHire aggregates the duration from intake to the hired stage.
type TimeToHire struct {
	HiredCount  int
	AverageDays float64
	MedianDays  float64
}

// OfferOutcomes counts offers by their terminal disposition. Draft offers
// are excluded; they were never put in front of a candidate.
type OfferOutcomes struct {
	Sent      int
	Accepted  int
	Declined  int
	Rejected  int
	Expired   int
	Withdrawn int
	Pending   int
}

// Repository runs the read-only reporting queries.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// StageFunnel returns application counts per stage, in catalog order.
func (r *Repository) StageFunnel(ctx context.Context) ([]StageCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT stage, COUNT(*) FROM applications GROUP BY stage`)
	if err != nil {
		return nil, fmt.Errorf("stage funnel: %w", err)
	}
	defer rows.Close()

	counts := make(map[pipeline.Stage]int)
	for rows.Next() {
		var stage pipeline.Stage
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, fmt.Errorf("scan funnel row: %w", err)
		}
		counts[stage] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	funnel := make([]StageCount, 0, len(pipeline.Catalog()))
	for _, stage := range pipeline.Catalog() {
		funnel = append(funnel, StageCount{Stage: stage, Count: counts[stage]})
	}
	return funnel, nil
}

// TimeToHire measures days from application creation to entering the
// hired stage, across all hired applications.
func (r *Repository) TimeToHire(ctx context.Context) (TimeToHire, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(AVG(EXTRACT(EPOCH FROM (h.entered_at - a.created_at)) / 86400.0), 0),
			COALESCE(PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY EXTRACT(EPOCH FROM (h.entered_at - a.created_at)) / 86400.0), 0)
		FROM applications a
		JOIN application_stage_history h ON h.application_id = a.id AND h.stage = 'hired'`

	var out TimeToHire
	if err := r.pool.QueryRow(ctx, query).Scan(&out.HiredCount, &out.AverageDays, &out.MedianDays); err != nil {
		return TimeToHire{}, fmt.Errorf("time to hire: %w", err)
	}
	return out, nil
}

// OfferOutcomes counts non-draft offers by status.
func (r *Repository) OfferOutcomes(ctx context.Context) (OfferOutcomes, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status <> 'draft'),
			COUNT(*) FILTER (WHERE status = 'accepted'),
			COUNT(*) FILTER (WHERE status = 'declined'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'expired'),
			COUNT(*) FILTER (WHERE status = 'withdrawn'),
			COUNT(*) FILTER (WHERE status IN ('sent', 'viewed', 'negotiating'))
		FROM offers`

	var out OfferOutcomes
	if err := r.pool.QueryRow(ctx, query).Scan(
		&out.Sent, &out.Accepted, &out.Declined, &out.Rejected,
		&out.Expired, &out.Withdrawn, &out.Pending,
	); err != nil {
		return OfferOutcomes{}, fmt.Errorf("offer outcomes: %w", err)
	}
	return out, nil
}
