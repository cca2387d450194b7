package repository

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence operations the jobs service needs.
type Store interface {
	Create(ctx context.Context, params CreateParams) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, openOnly bool) ([]Job, error)
	SetOpen(ctx context.Context, id uuid.UUID, open bool) (Job, error)
}
