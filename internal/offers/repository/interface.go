package repository

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence operations the offers service needs.
type Store interface {
	Create(ctx context.Context, params CreateParams) (Offer, error)
	GetByID(ctx context.Context, id uuid.UUID) (Offer, error)
	GetActiveByApplication(ctx context.Context, applicationID uuid.UUID) (Offer, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Offer, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (Offer, error)
}

// Ensure Repository implements Store
var _ Store = (*Repository)(nil)
