package pipeline

import "testing"

func TestProjectStatusTable(t *testing.T) {
	cases := []struct {
		stage Stage
		want  Status
	}{
		{StageShortlisting, StatusUnderReview},
		{StageScreening, StatusUnderReview},
		{StageInterview, StatusInterviewed},
		{StageOfferSent, StatusOffered},
		{StageOfferAccepted, StatusOffered},
		{StageHired, StatusHired},
		{StageRejected, StatusRejected},
		{StageWithdrawn, StatusUnderReview},
	}

	for _, tc := range cases {
		if got := ProjectStatus(tc.stage); got != tc.want {
			t.Errorf("ProjectStatus(%q) = %q, want %q", tc.stage, got, tc.want)
		}
	}
}

func TestAbsorbingStages(t *testing.T) {
	terminal := map[Stage]bool{StageHired: true, StageRejected: true, StageWithdrawn: true}

	for _, stage := range Catalog() {
		if got := IsAbsorbing(stage); got != terminal[stage] {
			t.Errorf("IsAbsorbing(%q) = %v, want %v", stage, got, terminal[stage])
		}
	}
}

func TestCanWithdraw(t *testing.T) {
	cases := []struct {
		stage Stage
		want  bool
	}{
		{StageShortlisting, true},
		{StageScreening, true},
		{StageInterview, true},
		{StageOfferSent, true},
		{StageOfferAccepted, false},
		{StageHired, false},
		{StageRejected, false},
		{StageWithdrawn, false},
	}

	for _, tc := range cases {
		if got := CanWithdraw(tc.stage); got != tc.want {
			t.Errorf("CanWithdraw(%q) = %v, want %v", tc.stage, got, tc.want)
		}
	}
}

func TestIsKnownCoversCatalog(t *testing.T) {
	for _, stage := range Catalog() {
		if !IsKnown(stage) {
			t.Errorf("catalog stage %q not known", stage)
		}
	}
	if IsKnown(Stage("onboarding")) {
		t.Error("unknown stage reported as known")
	}
}

func TestProjectIsTotalOverCatalog(t *testing.T) {
	for _, stage := range Catalog() {
		view := Project(stage)
		if view.Label == "" || view.Description == "" || view.Status == "" {
			t.Errorf("Project(%q) returned incomplete view: %+v", stage, view)
		}
		if view.Label == unknownStageLabel {
			t.Errorf("Project(%q) fell through to the generic label", stage)
		}
	}

	// Unknown stages still render a usable view.
	view := Project(Stage("mystery"))
	if view.Label != unknownStageLabel || view.Status != StatusUnderReview {
		t.Errorf("Project fallback = %+v", view)
	}
}
