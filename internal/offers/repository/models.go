package repository

import (
	"time"

	"github.com/google/uuid"
)

// Status is an offer's own lifecycle state, independent of the pipeline
// stage of its application.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusSent        Status = "sent"
	StatusViewed      Status = "viewed"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusDeclined    Status = "declined"
	StatusNegotiating Status = "negotiating"
	StatusExpired     Status = "expired"
	StatusWithdrawn   Status = "withdrawn"
)

// terminalStatuses admit no further mutation.
// Declined (candidate) and rejected (recruiter) are distinct terminal
// outcomes: a declined offer leaves the application open for a re-offer.
var terminalStatuses = map[Status]bool{
	StatusAccepted:  true,
	StatusRejected:  true,
	StatusDeclined:  true,
	StatusExpired:   true,
	StatusWithdrawn: true,
}

// IsTerminal reports whether the status admits no further mutation.
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// IsKnown reports whether s is a recognized offer status.
func (s Status) IsKnown() bool {
	switch s {
	case StatusDraft, StatusSent, StatusViewed, StatusAccepted, StatusRejected,
		StatusDeclined, StatusNegotiating, StatusExpired, StatusWithdrawn:
		return true
	}
	return false
}

// Attachment is the normalized tagged record for offer documents. Kind
// "none" means no attachment; "reference" points at a stored object.
type Attachment struct {
	Kind     string `json:"kind"`
	Name     string `json:"name,omitempty"`
	URL      string `json:"url,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

const (
	AttachmentNone      = "none"
	AttachmentReference = "reference"
)

// NegotiationEntry is one recorded event in an offer's response history.
type NegotiationEntry struct {
	Date    time.Time `json:"date"`
	Action  string    `json:"action"`
	Details string    `json:"details,omitempty"`
	By      string    `json:"by"`
}

// Offer is a terms proposal tied to exactly one application.
type Offer struct {
	ID                 uuid.UUID
	ApplicationID      uuid.UUID
	Status             Status
	PositionTitle      string
	SalaryAmountCents  *int64
	SalaryCurrency     string
	StartDate          *time.Time
	ExpiresAt          *time.Time
	Attachment         Attachment
	SentAt             *time.Time
	ViewedAt           *time.Time
	ResponseDate       *time.Time
	NegotiationHistory []NegotiationEntry
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateParams carries validated offer terms.
type CreateParams struct {
	ApplicationID     uuid.UUID
	Status            Status
	PositionTitle     string
	SalaryAmountCents *int64
	SalaryCurrency    string
	StartDate         *time.Time
	ExpiresAt         *time.Time
	Attachment        Attachment
	CreatedBy         string
	SentAt            *time.Time
	InitialEntry      *NegotiationEntry
}

// UpdateStatusParams is one guarded status mutation. ExpectedStatus is the
// compare-and-set guard.
type UpdateStatusParams struct {
	OfferID         uuid.UUID
	ExpectedStatus  Status
	NewStatus       Status
	StampSentAt     bool
	StampViewedAt   bool
	StampResponseAt bool
	Entry           *NegotiationEntry
}
