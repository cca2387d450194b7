package pipeline

// PublicView is the candidate-safe rendering of a stage, served by the
// portal status endpoint. All three tables are total over the catalog.
type PublicView struct {
	Label       string `json:"label"`
	Status      Status `json:"status"`
	Description string `json:"description"`
}

var stageLabels = map[Stage]string{
	StageShortlisting:  "Shortlisted",
	StageScreening:     "Screening",
	StageInterview:     "Interview",
	StageOfferSent:     "Offer extended",
	StageOfferAccepted: "Offer accepted",
	StageHired:         "Hired",
	StageRejected:      "Not selected",
	StageWithdrawn:     "Withdrawn",
}

var stageDescriptions = map[Stage]string{
	StageShortlisting:  "Your application has been received and shortlisted for review.",
	StageScreening:     "Our team is reviewing your profile and qualifications.",
	StageInterview:     "You are in the interview phase of the process.",
	StageOfferSent:     "An offer has been extended to you. Please review and respond.",
	StageOfferAccepted: "You have accepted the offer. We are preparing the next steps.",
	StageHired:         "Congratulations, your hiring is confirmed.",
	StageRejected:      "This application is no longer being considered.",
	StageWithdrawn:     "You withdrew your application from this opening.",
}

const unknownStageLabel = "In progress"

// Label returns the candidate-facing label for a stage.
func Label(stage Stage) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return unknownStageLabel
}

// Describe returns the candidate-facing description for a stage.
func Describe(stage Stage) string {
	if desc, ok := stageDescriptions[stage]; ok {
		return desc
	}
	return "Your application is progressing through our hiring process."
}

// Project renders the full candidate-safe view for a stage. It is a pure,
// total function: unknown stages fall back to a generic in-progress view
// rather than failing.
func Project(stage Stage) PublicView {
	return PublicView{
		Label:       Label(stage),
		Status:      ProjectStatus(stage),
		Description: Describe(stage),
	}
}
