// Package notification delivers candidate and recruiter emails in
// response to domain events.
package notification

import "context"

// Sender delivers the notification emails. Implementations render their
// own templates so transports can differ in formatting.
type Sender interface {
	SendApplicationReceived(ctx context.Context, toEmail, candidateName, jobTitle, portalURL string) error
	SendStageChanged(ctx context.Context, toEmail, candidateName, statusLabel, portalURL string) error
	SendApplicationRejected(ctx context.Context, toEmail, candidateName, reason string) error
	SendOfferSent(ctx context.Context, toEmail, candidateName, positionTitle, offerURL string) error
	SendOfferConfirmation(ctx context.Context, toEmail, candidateName string, accepted bool) error
	SendStaleReminder(ctx context.Context, toEmail, candidateName, stage string, daysSinceUpdate int) error
}

// NoopSender satisfies Sender without delivering anything. Used when email
// is disabled.
type NoopSender struct{}

func (NoopSender) SendApplicationReceived(context.Context, string, string, string, string) error {
	return nil
}

func (NoopSender) SendStageChanged(context.Context, string, string, string, string) error {
	return nil
}

func (NoopSender) SendApplicationRejected(context.Context, string, string, string) error {
	return nil
}

func (NoopSender) SendOfferSent(context.Context, string, string, string, string) error {
	return nil
}

func (NoopSender) SendOfferConfirmation(context.Context, string, string, bool) error {
	return nil
}

func (NoopSender) SendStaleReminder(context.Context, string, string, string, int) error {
	return nil
}

var _ Sender = NoopSender{}
