package pipeline

import (
	"testing"
	"time"
)

func TestDurationDays(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		entered time.Time
		exited  time.Time
		want    int
	}{
		{"same instant", base, base, 0},
		{"one millisecond", base, base.Add(time.Millisecond), 1},
		{"under a day rounds up", base, base.Add(6 * time.Hour), 1},
		{"exactly one day", base, base.Add(24 * time.Hour), 1},
		{"just over one day", base, base.Add(24*time.Hour + time.Minute), 2},
		{"ten days", base, base.Add(10 * 24 * time.Hour), 10},
		{"clock skew clamps to zero", base, base.Add(-time.Hour), 0},
	}

	for _, tc := range cases {
		if got := DurationDays(tc.entered, tc.exited); got != tc.want {
			t.Errorf("%s: DurationDays = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCloseEntry(t *testing.T) {
	entered := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	exited := entered.Add(36 * time.Hour)

	entry := OpenEntry(StageScreening, entered, "recruiter-1", nil, ActionMoved)
	if !entry.IsOpen() {
		t.Fatal("freshly opened entry should be open")
	}

	closed := CloseEntry(entry, exited)
	if closed.IsOpen() {
		t.Fatal("closed entry still reports open")
	}
	if closed.ExitedAt == nil || !closed.ExitedAt.Equal(exited) {
		t.Fatalf("exitedAt = %v, want %v", closed.ExitedAt, exited)
	}
	if closed.DurationDays == nil || *closed.DurationDays != 2 {
		t.Fatalf("durationDays = %v, want 2", closed.DurationDays)
	}
}

func TestCloseEntryIdempotent(t *testing.T) {
	entered := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := entered.Add(24 * time.Hour)
	later := entered.Add(90 * 24 * time.Hour)

	entry := CloseEntry(OpenEntry(StageInterview, entered, "recruiter-1", nil, ActionMoved), first)
	again := CloseEntry(entry, later)

	if !again.ExitedAt.Equal(first) {
		t.Fatalf("second close moved exitedAt to %v, want %v", again.ExitedAt, first)
	}
	if *again.DurationDays != *entry.DurationDays {
		t.Fatalf("second close changed duration: %d != %d", *again.DurationDays, *entry.DurationDays)
	}
}

func TestDurationNeverNegative(t *testing.T) {
	entered := time.Now()
	for _, delta := range []time.Duration{-48 * time.Hour, -time.Second, 0, time.Second} {
		if got := DurationDays(entered, entered.Add(delta)); got < 0 {
			t.Fatalf("DurationDays(%v) = %d, want >= 0", delta, got)
		}
	}
}
