package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("offer not found")

// ErrStatusConflict is returned when the compare-and-set guard fails: a
// concurrent writer changed the offer status first.
var ErrStatusConflict = errors.New("offer status changed concurrently")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const offerColumns = `
	id, application_id, status, position_title, salary_amount_cents,
	salary_currency, start_date, expires_at, attachment, sent_at, viewed_at,
	response_date, negotiation_history, created_by, created_at, updated_at`

func scanOffer(row pgx.Row) (Offer, error) {
	var offer Offer
	var attachmentRaw, historyRaw []byte
	err := row.Scan(
		&offer.ID,
		&offer.ApplicationID,
		&offer.Status,
		&offer.PositionTitle,
		&offer.SalaryAmountCents,
		&offer.SalaryCurrency,
		&offer.StartDate,
		&offer.ExpiresAt,
		&attachmentRaw,
		&offer.SentAt,
		&offer.ViewedAt,
		&offer.ResponseDate,
		&historyRaw,
		&offer.CreatedBy,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Offer{}, ErrNotFound
	}
	if err != nil {
		return Offer{}, err
	}

	if len(attachmentRaw) > 0 {
		if err := json.Unmarshal(attachmentRaw, &offer.Attachment); err != nil {
			return Offer{}, fmt.Errorf("decode attachment: %w", err)
		}
	} else {
		offer.Attachment = Attachment{Kind: AttachmentNone}
	}
	if len(historyRaw) > 0 {
		if err := json.Unmarshal(historyRaw, &offer.NegotiationHistory); err != nil {
			return Offer{}, fmt.Errorf("decode negotiation history: %w", err)
		}
	}
	return offer, nil
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (Offer, error) {
	attachment := params.Attachment
	if attachment.Kind == "" {
		attachment.Kind = AttachmentNone
	}
	attachmentJSON, err := json.Marshal(attachment)
	if err != nil {
		return Offer{}, fmt.Errorf("encode attachment: %w", err)
	}

	history := make([]NegotiationEntry, 0, 1)
	if params.InitialEntry != nil {
		history = append(history, *params.InitialEntry)
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return Offer{}, fmt.Errorf("encode negotiation history: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO offers (
			application_id, status, position_title, salary_amount_cents,
			salary_currency, start_date, expires_at, attachment, sent_at,
			negotiation_history, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+offerColumns+`
	`, params.ApplicationID, params.Status, params.PositionTitle, params.SalaryAmountCents,
		params.SalaryCurrency, params.StartDate, params.ExpiresAt, attachmentJSON,
		params.SentAt, historyJSON, params.CreatedBy)

	return scanOffer(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Offer, error) {
	return scanOffer(r.pool.QueryRow(ctx, `
		SELECT `+offerColumns+`
		FROM offers WHERE id = $1
	`, id))
}

// GetActiveByApplication returns the one non-terminal offer for an
// application, if any.
func (r *Repository) GetActiveByApplication(ctx context.Context, applicationID uuid.UUID) (Offer, error) {
	return scanOffer(r.pool.QueryRow(ctx, `
		SELECT `+offerColumns+`
		FROM offers
		WHERE application_id = $1
			AND status NOT IN ('accepted', 'rejected', 'declined', 'expired', 'withdrawn')
		ORDER BY created_at DESC
		LIMIT 1
	`, applicationID))
}

// ListByApplication returns all offers for an application, newest first.
func (r *Repository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Offer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+offerColumns+`
		FROM offers
		WHERE application_id = $1
		ORDER BY created_at DESC
	`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

// UpdateStatus applies one guarded status mutation. The UPDATE only matches
// while the stored status equals the expected one; the negotiation entry,
// timestamps and status land in the same write.
func (r *Repository) UpdateStatus(ctx context.Context, params UpdateStatusParams) (Offer, error) {
	now := time.Now().UTC()

	entryJSON := []byte("[]")
	if params.Entry != nil {
		var err error
		entryJSON, err = json.Marshal([]NegotiationEntry{*params.Entry})
		if err != nil {
			return Offer{}, fmt.Errorf("encode negotiation entry: %w", err)
		}
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE offers
		SET status = $3,
			sent_at = CASE WHEN $4 THEN $7 ELSE sent_at END,
			viewed_at = CASE WHEN $5 THEN $7 ELSE viewed_at END,
			response_date = CASE WHEN $6 THEN $7 ELSE response_date END,
			negotiation_history = negotiation_history || $8::jsonb,
			updated_at = $7
		WHERE id = $1 AND status = $2
	`, params.OfferID, params.ExpectedStatus, params.NewStatus,
		params.StampSentAt, params.StampViewedAt, params.StampResponseAt, now, entryJSON)
	if err != nil {
		return Offer{}, fmt.Errorf("update offer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM offers WHERE id = $1)`, params.OfferID).Scan(&exists); err != nil {
			return Offer{}, err
		}
		if !exists {
			return Offer{}, ErrNotFound
		}
		return Offer{}, ErrStatusConflict
	}

	return r.GetByID(ctx, params.OfferID)
}
