package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence operations the applications service needs.
// Services depend on this abstraction so transition semantics can be tested
// against an in-memory implementation.
type Store interface {
	Create(ctx context.Context, params CreateParams) (Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	GetByPortalTokenHash(ctx context.Context, tokenHash string) (Application, error)
	List(ctx context.Context, filter ListFilter) ([]Application, int, error)
	TransitionStage(ctx context.Context, params TransitionParams) (Application, error)
	Assign(ctx context.Context, id uuid.UUID, recruiterID *uuid.UUID, actor string) error
	AddComment(ctx context.Context, id uuid.UUID, authorName, body string) (Comment, error)
	SetScore(ctx context.Context, id uuid.UUID, score int, profileStrength string) error
	SetResumeText(ctx context.Context, id uuid.UUID, text string) error
	RecordActivity(ctx context.Context, id uuid.UUID, action, description string, metadata map[string]any) error
	ListActivity(ctx context.Context, id uuid.UUID, limit int) ([]ActivityEntry, error)
	ListStale(ctx context.Context, cutoff time.Time) ([]StaleApplication, error)
}

// Ensure Repository implements Store
var _ Store = (*Repository)(nil)
