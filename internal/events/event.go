// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"hireflow_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Application Domain Events
// =============================================================================

// ApplicationCreated is published when a candidate enters the pipeline.
type ApplicationCreated struct {
	BaseEvent
	ApplicationID  uuid.UUID `json:"applicationId"`
	JobID          uuid.UUID `json:"jobId"`
	CandidateName  string    `json:"candidateName"`
	CandidateEmail string    `json:"candidateEmail"`
	ResumeFileKey  string    `json:"resumeFileKey,omitempty"`
	PortalToken    string    `json:"portalToken"`
}

func (e ApplicationCreated) EventName() string { return "applications.created" }

// StageChanged is published after a stage transition commits.
type StageChanged struct {
	BaseEvent
	ApplicationID  uuid.UUID `json:"applicationId"`
	JobID          uuid.UUID `json:"jobId"`
	CandidateName  string    `json:"candidateName"`
	CandidateEmail string    `json:"candidateEmail"`
	FromStage      string    `json:"fromStage"`
	ToStage        string    `json:"toStage"`
	Actor          string    `json:"actor"`
}

func (e StageChanged) EventName() string { return "applications.stage.changed" }

// ApplicationRejected is published after a rejection transition commits.
type ApplicationRejected struct {
	BaseEvent
	ApplicationID  uuid.UUID `json:"applicationId"`
	CandidateName  string    `json:"candidateName"`
	CandidateEmail string    `json:"candidateEmail"`
	Reason         string    `json:"reason"`
	Actor          string    `json:"actor"`
}

func (e ApplicationRejected) EventName() string { return "applications.rejected" }

// ApplicationWithdrawn is published when a candidate withdraws.
type ApplicationWithdrawn struct {
	BaseEvent
	ApplicationID  uuid.UUID `json:"applicationId"`
	CandidateName  string    `json:"candidateName"`
	CandidateEmail string    `json:"candidateEmail"`
	Reason         string    `json:"reason,omitempty"`
}

func (e ApplicationWithdrawn) EventName() string { return "applications.withdrawn" }

// ApplicationStale is published by the reminder sweep when an application
// has seen no activity for the configured window.
type ApplicationStale struct {
	BaseEvent
	ApplicationID   uuid.UUID  `json:"applicationId"`
	CandidateName   string     `json:"candidateName"`
	Stage           string     `json:"stage"`
	AssignedTo      *uuid.UUID `json:"assignedTo,omitempty"`
	RecruiterEmail  string     `json:"recruiterEmail,omitempty"`
	DaysSinceUpdate int        `json:"daysSinceUpdate"`
}

func (e ApplicationStale) EventName() string { return "applications.stale" }

// =============================================================================
// Offer Domain Events
// =============================================================================

// OfferSent is published after an offer is sent to the candidate.
type OfferSent struct {
	BaseEvent
	OfferID        uuid.UUID `json:"offerId"`
	ApplicationID  uuid.UUID `json:"applicationId"`
	CandidateName  string    `json:"candidateName"`
	CandidateEmail string    `json:"candidateEmail"`
	PositionTitle  string    `json:"positionTitle"`
	Actor          string    `json:"actor"`
}

func (e OfferSent) EventName() string { return "offers.sent" }

// OfferResponded is published when the candidate accepts or declines.
type OfferResponded struct {
	BaseEvent
	OfferID        uuid.UUID `json:"offerId"`
	ApplicationID  uuid.UUID `json:"applicationId"`
	CandidateName  string    `json:"candidateName"`
	CandidateEmail string    `json:"candidateEmail"`
	Response       string    `json:"response"` // "accept" or "decline"
	Details        string    `json:"details,omitempty"`
}

func (e OfferResponded) EventName() string { return "offers.responded" }

// OfferStatusChanged is published on an administrative offer status change
// (negotiating, expired, withdrawn).
type OfferStatusChanged struct {
	BaseEvent
	OfferID       uuid.UUID `json:"offerId"`
	ApplicationID uuid.UUID `json:"applicationId"`
	OldStatus     string    `json:"oldStatus"`
	NewStatus     string    `json:"newStatus"`
	Actor         string    `json:"actor"`
}

func (e OfferStatusChanged) EventName() string { return "offers.status.changed" }

// =============================================================================
// Scoring Domain Events
// =============================================================================

// ResumeScored is published when background resume scoring completes.
type ResumeScored struct {
	BaseEvent
	ApplicationID   uuid.UUID `json:"applicationId"`
	Score           int       `json:"score"`
	ProfileStrength string    `json:"profileStrength"`
	Fallback        bool      `json:"fallback"`
}

func (e ResumeScored) EventName() string { return "scoring.resume.scored" }

// ResumeScoringFailed is published when scoring cannot be completed at all.
// The application itself is unaffected.
type ResumeScoringFailed struct {
	BaseEvent
	ApplicationID uuid.UUID `json:"applicationId"`
	ErrorMessage  string    `json:"errorMessage"`
}

func (e ResumeScoringFailed) EventName() string { return "scoring.resume.failed" }
