package notification

const (
	subjectApplicationReceived = "We received your application"
	subjectStageChangedFmt     = "Update on your application: %s"
	subjectApplicationRejected = "Update on your application"
	subjectOfferSentFmt        = "You have an offer for %s"
	subjectOfferConfirmation   = "We received your response"
	subjectStaleReminderFmt    = "Reminder: %s has been waiting %d days"
)
