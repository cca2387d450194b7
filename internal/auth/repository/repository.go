package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")
var ErrEmailTaken = errors.New("email already in use")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Recruiter is an internal console account.
type Recruiter struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Roles        []string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const recruiterColumns = `id, email, password_hash, full_name, roles, is_active, last_login_at, created_at, updated_at`

func scanRecruiter(row pgx.Row) (Recruiter, error) {
	var rec Recruiter
	err := row.Scan(
		&rec.ID,
		&rec.Email,
		&rec.PasswordHash,
		&rec.FullName,
		&rec.Roles,
		&rec.IsActive,
		&rec.LastLoginAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Recruiter{}, ErrNotFound
	}
	return rec, err
}

func (r *Repository) CreateRecruiter(ctx context.Context, email, passwordHash, fullName string, roles []string) (Recruiter, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO recruiters (email, password_hash, full_name, roles)
		VALUES ($1, $2, $3, $4)
		RETURNING `+recruiterColumns+`
	`, email, passwordHash, fullName, roles)

	rec, err := scanRecruiter(row)
	if err != nil && isUniqueViolation(err) {
		return Recruiter{}, ErrEmailTaken
	}
	return rec, err
}

func (r *Repository) GetRecruiterByEmail(ctx context.Context, email string) (Recruiter, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+recruiterColumns+`
		FROM recruiters WHERE lower(email) = lower($1)
	`, email)
	return scanRecruiter(row)
}

func (r *Repository) GetRecruiterByID(ctx context.Context, id uuid.UUID) (Recruiter, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+recruiterColumns+`
		FROM recruiters WHERE id = $1
	`, id)
	return scanRecruiter(row)
}

func (r *Repository) ListRecruiters(ctx context.Context) ([]Recruiter, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recruiterColumns+`
		FROM recruiters
		WHERE is_active
		ORDER BY full_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recruiters := make([]Recruiter, 0)
	for rows.Next() {
		rec, err := scanRecruiter(rows)
		if err != nil {
			return nil, err
		}
		recruiters = append(recruiters, rec)
	}
	return recruiters, rows.Err()
}

func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE recruiters SET last_login_at = now(), updated_at = now() WHERE id = $1
	`, id)
	return err
}

func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE recruiters SET password_hash = $2, updated_at = now() WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
