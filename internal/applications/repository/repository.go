package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hireflow_backend/internal/pipeline"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("application not found")

// ErrStageConflict is returned when the compare-and-set guard fails: a
// concurrent writer changed the stage between the caller's read and write.
var ErrStageConflict = errors.New("application stage changed concurrently")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const applicationColumns = `
	id, job_id, candidate_name, candidate_email, candidate_phone,
	stage, status, resume_file_key, resume_text, score, profile_strength,
	rejection_reason, rejection_date, assigned_to, portal_token_hash,
	last_activity_at, created_at, updated_at`

func scanApplication(row pgx.Row) (Application, error) {
	var app Application
	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.CandidateName,
		&app.CandidateEmail,
		&app.CandidatePhone,
		&app.Stage,
		&app.Status,
		&app.ResumeFileKey,
		&app.ResumeText,
		&app.Score,
		&app.ProfileStrength,
		&app.RejectionReason,
		&app.RejectionDate,
		&app.AssignedTo,
		&app.PortalTokenHash,
		&app.LastActivityAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return app, err
}

// Create inserts the application at the first pipeline stage together with
// its initial open ledger entry and an intake activity record, in one
// transaction.
func (r *Repository) Create(ctx context.Context, params CreateParams) (Application, error) {
	now := time.Now().UTC()
	stage := pipeline.StageShortlisting
	status := pipeline.ProjectStatus(stage)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Application{}, fmt.Errorf("begin create: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO applications (
			job_id, candidate_name, candidate_email, candidate_phone,
			stage, status, resume_file_key, portal_token_hash, last_activity_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+applicationColumns+`
	`, params.JobID, params.CandidateName, params.CandidateEmail, params.CandidatePhone,
		stage, status, params.ResumeFileKey, params.PortalTokenHash, now)

	app, err := scanApplication(row)
	if err != nil {
		return Application{}, fmt.Errorf("insert application: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO application_stage_history (application_id, stage, entered_at, moved_by, action)
		VALUES ($1, $2, $3, $4, $5)
	`, app.ID, stage, now, "candidate", pipeline.ActionApplied); err != nil {
		return Application{}, fmt.Errorf("insert initial ledger entry: %w", err)
	}

	if err := insertActivity(ctx, tx, app.ID, "application_created",
		fmt.Sprintf("%s applied", params.CandidateName),
		map[string]any{"jobId": params.JobID.String(), "stage": string(stage)}); err != nil {
		return Application{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Application{}, fmt.Errorf("commit create: %w", err)
	}

	app.StageHistory = []pipeline.HistoryEntry{
		pipeline.OpenEntry(stage, now, "candidate", nil, pipeline.ActionApplied),
	}
	return app, nil
}

// GetByID loads the aggregate including its ledger and comments.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Application, error) {
	app, err := scanApplication(r.pool.QueryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM applications WHERE id = $1
	`, id))
	if err != nil {
		return Application{}, err
	}

	if app.StageHistory, err = r.listHistory(ctx, id); err != nil {
		return Application{}, err
	}
	if app.Comments, err = r.listComments(ctx, id); err != nil {
		return Application{}, err
	}
	return app, nil
}

// GetByPortalTokenHash resolves the application a portal token refers to.
func (r *Repository) GetByPortalTokenHash(ctx context.Context, tokenHash string) (Application, error) {
	app, err := scanApplication(r.pool.QueryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM applications WHERE portal_token_hash = $1
	`, tokenHash))
	if err != nil {
		return Application{}, err
	}
	if app.StageHistory, err = r.listHistory(ctx, app.ID); err != nil {
		return Application{}, err
	}
	return app, nil
}

func (r *Repository) listHistory(ctx context.Context, id uuid.UUID) ([]pipeline.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT stage, entered_at, exited_at, duration_days, moved_by, notes, action
		FROM application_stage_history
		WHERE application_id = $1
		ORDER BY entered_at ASC, id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]pipeline.HistoryEntry, 0)
	for rows.Next() {
		var entry pipeline.HistoryEntry
		if err := rows.Scan(&entry.Stage, &entry.EnteredAt, &entry.ExitedAt,
			&entry.DurationDays, &entry.MovedBy, &entry.Notes, &entry.Action); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *Repository) listComments(ctx context.Context, id uuid.UUID) ([]Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, application_id, author_name, body, created_at
		FROM application_comments
		WHERE application_id = $1
		ORDER BY created_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ApplicationID, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// List returns applications matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Application, int, error) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 7)

	addArg := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.JobID != nil {
		addArg("job_id = $%d", *filter.JobID)
	}
	if filter.Stage != nil {
		addArg("stage = $%d", *filter.Stage)
	}
	if filter.Status != nil {
		addArg("status = $%d", *filter.Status)
	}
	if filter.AssignedTo != nil {
		addArg("assigned_to = $%d", *filter.AssignedTo)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, search)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(candidate_name ILIKE '%%' || $%d || '%%' OR candidate_email ILIKE '%%' || $%d || '%%')", n, n))
	}

	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM applications "+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM applications
		%s
		ORDER BY last_activity_at DESC
		LIMIT $%d OFFSET $%d
	`, applicationColumns, clause, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps := make([]Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, app)
	}
	return apps, total, rows.Err()
}

// TransitionStage applies one atomic stage transition. The UPDATE is guarded
// by the expected stage: a concurrent writer that got there first makes the
// guard fail and the caller receives ErrStageConflict, never a silent
// overwrite. The ledger close, the new open entry, the rejection fields and
// the activity record all commit with the stage write or not at all.
func (r *Repository) TransitionStage(ctx context.Context, params TransitionParams) (Application, error) {
	now := time.Now().UTC()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Application{}, fmt.Errorf("begin transition: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE applications
		SET stage = $3,
			status = $4,
			rejection_reason = COALESCE($5, rejection_reason),
			rejection_date = CASE WHEN $5::text IS NOT NULL THEN $6 ELSE rejection_date END,
			last_activity_at = $6,
			updated_at = $6
		WHERE id = $1 AND stage = $2
	`, params.ApplicationID, params.ExpectedStage, params.TargetStage, params.TargetStatus,
		params.RejectionReason, now)
	if err != nil {
		return Application{}, fmt.Errorf("update stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`,
			params.ApplicationID).Scan(&exists); err != nil {
			return Application{}, err
		}
		if !exists {
			return Application{}, ErrNotFound
		}
		return Application{}, ErrStageConflict
	}

	// Close the open ledger entry. The duration math lives in the pipeline
	// package so repository and tests share one definition.
	var openID int64
	var enteredAt time.Time
	err = tx.QueryRow(ctx, `
		SELECT id, entered_at
		FROM application_stage_history
		WHERE application_id = $1 AND exited_at IS NULL
		FOR UPDATE
	`, params.ApplicationID).Scan(&openID, &enteredAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// no open entry to close; tolerated so a repaired ledger stays usable
	case err != nil:
		return Application{}, fmt.Errorf("select open ledger entry: %w", err)
	default:
		duration := pipeline.DurationDays(enteredAt, now)
		if _, err := tx.Exec(ctx, `
			UPDATE application_stage_history
			SET exited_at = $2, duration_days = $3
			WHERE id = $1
		`, openID, now, duration); err != nil {
			return Application{}, fmt.Errorf("close ledger entry: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO application_stage_history (application_id, stage, entered_at, moved_by, notes, action)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, params.ApplicationID, params.TargetStage, now, params.Actor, params.Notes, params.Action); err != nil {
		return Application{}, fmt.Errorf("open ledger entry: %w", err)
	}

	if params.RejectionReason != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO application_comments (application_id, author_name, body)
			VALUES ($1, $2, $3)
		`, params.ApplicationID, params.Actor, "Rejected: "+*params.RejectionReason); err != nil {
			return Application{}, fmt.Errorf("insert rejection comment: %w", err)
		}
	}

	if err := insertActivity(ctx, tx, params.ApplicationID, params.ActivityAction,
		params.ActivityDescription, params.ActivityMetadata); err != nil {
		return Application{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Application{}, fmt.Errorf("commit transition: %w", err)
	}

	return r.GetByID(ctx, params.ApplicationID)
}

// Assign sets or clears the responsible recruiter.
func (r *Repository) Assign(ctx context.Context, id uuid.UUID, recruiterID *uuid.UUID, actor string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE applications
		SET assigned_to = $2, last_activity_at = now(), updated_at = now()
		WHERE id = $1
	`, id, recruiterID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	meta := map[string]any{}
	if recruiterID != nil {
		meta["recruiterId"] = recruiterID.String()
	}
	if err := insertActivity(ctx, tx, id, "application_assigned",
		fmt.Sprintf("assignment changed by %s", actor), meta); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// AddComment appends a recruiter note.
func (r *Repository) AddComment(ctx context.Context, id uuid.UUID, authorName, body string) (Comment, error) {
	var c Comment
	err := r.pool.QueryRow(ctx, `
		INSERT INTO application_comments (application_id, author_name, body)
		VALUES ($1, $2, $3)
		RETURNING id, application_id, author_name, body, created_at
	`, id, authorName, body).Scan(&c.ID, &c.ApplicationID, &c.AuthorName, &c.Body, &c.CreatedAt)
	return c, err
}

// SetScore stores the outcome of background resume scoring.
func (r *Repository) SetScore(ctx context.Context, id uuid.UUID, score int, profileStrength string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE applications
		SET score = $2, profile_strength = $3, updated_at = now()
		WHERE id = $1
	`, id, score, profileStrength)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResumeText stores extracted resume text for later scoring.
func (r *Repository) SetResumeText(ctx context.Context, id uuid.UUID, text string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE applications SET resume_text = $2, updated_at = now() WHERE id = $1
	`, id, text)
	return err
}

// RecordActivity appends an audit record outside a transition, used for
// swallowed collaborator failures and background task outcomes.
func (r *Repository) RecordActivity(ctx context.Context, id uuid.UUID, action, description string, metadata map[string]any) error {
	return insertActivity(ctx, r.pool, id, action, description, metadata)
}

// ListActivity returns the audit trail, newest first.
func (r *Repository) ListActivity(ctx context.Context, id uuid.UUID, limit int) ([]ActivityEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, application_id, action, description, metadata, created_at
		FROM application_activity_log
		WHERE application_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]ActivityEntry, 0)
	for rows.Next() {
		var entry ActivityEntry
		var raw []byte
		if err := rows.Scan(&entry.ID, &entry.ApplicationID, &entry.Action,
			&entry.Description, &raw, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("decode activity metadata: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListStale returns non-terminal applications without activity since the
// cutoff, joined with the assigned recruiter's email for the reminder.
func (r *Repository) ListStale(ctx context.Context, cutoff time.Time) ([]StaleApplication, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.candidate_name, a.stage, a.assigned_to, rec.email, a.last_activity_at
		FROM applications a
		LEFT JOIN recruiters rec ON rec.id = a.assigned_to
		WHERE a.stage NOT IN ('hired', 'rejected', 'withdrawn')
			AND a.last_activity_at < $1
		ORDER BY a.last_activity_at ASC
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stale := make([]StaleApplication, 0)
	for rows.Next() {
		var item StaleApplication
		if err := rows.Scan(&item.ID, &item.CandidateName, &item.Stage,
			&item.AssignedTo, &item.RecruiterEmail, &item.LastActivityAt); err != nil {
			return nil, err
		}
		stale = append(stale, item)
	}
	return stale, rows.Err()
}

// querier covers both pgxpool.Pool and pgx.Tx for activity inserts.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertActivity(ctx context.Context, q querier, applicationID uuid.UUID, action, description string, metadata map[string]any) error {
	payload, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode activity metadata: %w", err)
	}
	if metadata == nil {
		payload = []byte("{}")
	}
	if _, err := q.Exec(ctx, `
		INSERT INTO application_activity_log (application_id, action, description, metadata)
		VALUES ($1, $2, $3, $4)
	`, applicationID, action, description, payload); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
