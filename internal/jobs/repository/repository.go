package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a job does not exist.
var ErrNotFound = errors.New("job not found")

// Job is an opening that applications reference.
type Job struct {
	ID          uuid.UUID
	Title       string
	Department  string
	Location    string
	Description string
	IsOpen      bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateParams carries validated job fields.
type CreateParams struct {
	Title       string
	Department  string
	Location    string
	Description string
	CreatedBy   string
}

const jobColumns = `id, title, department, location, description, is_open, created_by, created_at, updated_at`

// Repository provides Postgres persistence for jobs.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new jobs repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Compile-time check that Repository implements Store.
var _ Store = (*Repository)(nil)

func scanJob(row pgx.Row) (Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Description,
		&j.IsOpen, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

// Create inserts a new open job.
func (r *Repository) Create(ctx context.Context, params CreateParams) (Job, error) {
	query := `
		INSERT INTO jobs (id, title, department, location, description, is_open, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, $6, $7, $7)
		RETURNING ` + jobColumns

	job, err := scanJob(r.pool.QueryRow(ctx, query,
		uuid.New(), params.Title, params.Department, params.Location,
		params.Description, params.CreatedBy, time.Now().UTC()))
	if err != nil {
		return Job{}, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// GetByID fetches a job by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// List returns jobs, optionally restricted to open ones, newest first.
func (r *Repository) List(ctx context.Context, openOnly bool) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	if openOnly {
		query += ` WHERE is_open`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// SetOpen opens or closes a job for new applications.
func (r *Repository) SetOpen(ctx context.Context, id uuid.UUID, open bool) (Job, error) {
	query := `
		UPDATE jobs SET is_open = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + jobColumns

	job, err := scanJob(r.pool.QueryRow(ctx, query, id, open, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}
