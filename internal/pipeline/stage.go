// Package pipeline provides core business rules for the hiring pipeline:
// the ordered stage catalog, the stage→status projection, candidate-safe
// display tables and the stage history ledger operations.
package pipeline

// Stage is the coarse pipeline position of an application.
type Stage string

const (
	StageShortlisting  Stage = "shortlisting"
	StageScreening     Stage = "screening"
	StageInterview     Stage = "interview"
	StageOfferSent     Stage = "offer-sent"
	StageOfferAccepted Stage = "offer-accepted"
	StageHired         Stage = "hired"
	StageRejected      Stage = "rejected"
	StageWithdrawn     Stage = "withdrawn"
)

// Status is the derived, coarser projection of Stage used for reporting.
type Status string

const (
	StatusUnderReview Status = "under_review"
	StatusInterviewed Status = "interviewed"
	StatusOffered     Status = "offered"
	StatusHired       Status = "hired"
	StatusRejected    Status = "rejected"
)

// catalog is the fixed ordered list of pipeline stages.
var catalog = []Stage{
	StageShortlisting,
	StageScreening,
	StageInterview,
	StageOfferSent,
	StageOfferAccepted,
	StageHired,
	StageRejected,
	StageWithdrawn,
}

var knownStages = map[Stage]struct{}{
	StageShortlisting:  {},
	StageScreening:     {},
	StageInterview:     {},
	StageOfferSent:     {},
	StageOfferAccepted: {},
	StageHired:         {},
	StageRejected:      {},
	StageWithdrawn:     {},
}

// absorbingStages are stages from which no further transition is permitted.
var absorbingStages = map[Stage]bool{
	StageHired:     true,
	StageRejected:  true,
	StageWithdrawn: true,
}

// Catalog returns the ordered stage catalog.
func Catalog() []Stage {
	out := make([]Stage, len(catalog))
	copy(out, catalog)
	return out
}

// IsKnown reports whether the stage is part of the catalog.
func IsKnown(stage Stage) bool {
	_, ok := knownStages[stage]
	return ok
}

// IsAbsorbing reports whether the stage is terminal for the application.
func IsAbsorbing(stage Stage) bool {
	return absorbingStages[stage]
}

// CanWithdraw reports whether a candidate withdrawal is still permitted
// from the given stage. Withdrawal is forbidden once the application is
// hired, rejected, or the candidate has already accepted an offer.
func CanWithdraw(stage Stage) bool {
	switch stage {
	case StageHired, StageRejected, StageOfferAccepted, StageWithdrawn:
		return false
	}
	return true
}

// ProjectStatus derives the coarse status for a stage. The table is fixed:
// hired→hired, rejected→rejected, offer stages→offered, interview→interviewed,
// everything else is under review.
func ProjectStatus(stage Stage) Status {
	switch stage {
	case StageHired:
		return StatusHired
	case StageRejected:
		return StatusRejected
	case StageOfferSent, StageOfferAccepted:
		return StatusOffered
	case StageInterview:
		return StatusInterviewed
	default:
		return StatusUnderReview
	}
}
