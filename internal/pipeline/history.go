package pipeline

import "time"

// Ledger action tags recorded on history entries.
const (
	ActionApplied   = "applied"
	ActionMoved     = "moved"
	ActionRejected  = "rejected"
	ActionWithdrawn = "withdrawn"
)

const millisPerDay = 86_400_000

// HistoryEntry is one stage-residency interval in the ledger. An entry with
// ExitedAt unset is "open"; at most one entry per application may be open.
type HistoryEntry struct {
	Stage        Stage
	EnteredAt    time.Time
	ExitedAt     *time.Time
	DurationDays *int
	MovedBy      string
	Notes        *string
	Action       string
}

// IsOpen reports whether the entry is still the application's current interval.
func (e HistoryEntry) IsOpen() bool {
	return e.ExitedAt == nil
}

// OpenEntry starts a new open residency interval for a stage.
func OpenEntry(stage Stage, at time.Time, movedBy string, notes *string, action string) HistoryEntry {
	return HistoryEntry{
		Stage:     stage,
		EnteredAt: at,
		MovedBy:   movedBy,
		Notes:     notes,
		Action:    action,
	}
}

// CloseEntry closes an open interval, stamping the exit time and the derived
// duration. Closing an already-closed entry is a no-op so defensive callers
// can invoke it idempotently.
func CloseEntry(entry HistoryEntry, at time.Time) HistoryEntry {
	if !entry.IsOpen() {
		return entry
	}
	exited := at
	days := DurationDays(entry.EnteredAt, exited)
	entry.ExitedAt = &exited
	entry.DurationDays = &days
	return entry
}

// DurationDays computes ceil((exited − entered) / 1 day), never negative.
// A clock skew that yields a negative interval clamps to zero.
func DurationDays(entered, exited time.Time) int {
	deltaMs := exited.Sub(entered).Milliseconds()
	if deltaMs <= 0 {
		return 0
	}
	return int((deltaMs + millisPerDay - 1) / millisPerDay)
}
