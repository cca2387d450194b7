package repository

import (
	"time"

	"hireflow_backend/internal/pipeline"

	"github.com/google/uuid"
)

// Application is the aggregate root linking a candidate to a job opening.
type Application struct {
	ID              uuid.UUID
	JobID           uuid.UUID
	CandidateName   string
	CandidateEmail  string
	CandidatePhone  *string
	Stage           pipeline.Stage
	Status          pipeline.Status
	ResumeFileKey   *string
	ResumeText      *string
	Score           *int
	ProfileStrength *string
	RejectionReason *string
	RejectionDate   *time.Time
	AssignedTo      *uuid.UUID
	PortalTokenHash string
	LastActivityAt  time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	StageHistory []pipeline.HistoryEntry
	Comments     []Comment
}

// Comment is a recruiter note on an application.
type Comment struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	AuthorName    string
	Body          string
	CreatedAt     time.Time
}

// ActivityEntry is one append-only audit trail record.
type ActivityEntry struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	Action        string
	Description   string
	Metadata      map[string]any
	CreatedAt     time.Time
}

// CreateParams carries intake data for a new application.
type CreateParams struct {
	JobID           uuid.UUID
	CandidateName   string
	CandidateEmail  string
	CandidatePhone  *string
	ResumeFileKey   *string
	PortalTokenHash string
}

// TransitionParams carries one atomic stage transition.
// ExpectedStage is the compare-and-set guard: the write applies only if the
// stored stage still equals it.
type TransitionParams struct {
	ApplicationID   uuid.UUID
	ExpectedStage   pipeline.Stage
	TargetStage     pipeline.Stage
	TargetStatus    pipeline.Status
	Actor           string
	Notes           *string
	Action          string
	RejectionReason *string

	ActivityAction      string
	ActivityDescription string
	ActivityMetadata    map[string]any
}

// ListFilter narrows and pages the application list.
type ListFilter struct {
	JobID      *uuid.UUID
	Stage      *pipeline.Stage
	Status     *pipeline.Status
	AssignedTo *uuid.UUID
	Search     string
	Limit      int
	Offset     int
}

// StaleApplication is a row returned by the reminder sweep query.
type StaleApplication struct {
	ID             uuid.UUID
	CandidateName  string
	Stage          pipeline.Stage
	AssignedTo     *uuid.UUID
	RecruiterEmail *string
	LastActivityAt time.Time
}
