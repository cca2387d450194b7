package notification

import (
	"context"
	"fmt"
	"net"
	"time"

	"hireflow_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers notification emails over a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates an SMTPSender from SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTPSender) SendApplicationReceived(ctx context.Context, toEmail, candidateName, jobTitle, portalURL string) error {
	content, err := renderEmailTemplate("application_received.html", applicationReceivedData{
		baseEmailData: baseEmailData{
			Title:    subjectApplicationReceived,
			Heading:  "Application received",
			CTALabel: "Track your application",
			CTAURL:   portalURL,
		},
		CandidateName: candidateName,
		JobTitle:      jobTitle,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectApplicationReceived, content)
}

func (s *SMTPSender) SendStageChanged(ctx context.Context, toEmail, candidateName, statusLabel, portalURL string) error {
	subject := fmt.Sprintf(subjectStageChangedFmt, statusLabel)
	content, err := renderEmailTemplate("stage_changed.html", stageChangedData{
		baseEmailData: baseEmailData{
			Title:    subject,
			Heading:  "Application update",
			CTALabel: "View your application",
			CTAURL:   portalURL,
		},
		CandidateName: candidateName,
		StatusLabel:   statusLabel,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendApplicationRejected(ctx context.Context, toEmail, candidateName, reason string) error {
	content, err := renderEmailTemplate("application_rejected.html", applicationRejectedData{
		baseEmailData: baseEmailData{
			Title:   subjectApplicationRejected,
			Heading: "Application update",
		},
		CandidateName: candidateName,
		Reason:        reason,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectApplicationRejected, content)
}

func (s *SMTPSender) SendOfferSent(ctx context.Context, toEmail, candidateName, positionTitle, offerURL string) error {
	subject := fmt.Sprintf(subjectOfferSentFmt, positionTitle)
	content, err := renderEmailTemplate("offer_sent.html", offerSentData{
		baseEmailData: baseEmailData{
			Title:    subject,
			Heading:  "You have an offer",
			CTALabel: "Review your offer",
			CTAURL:   offerURL,
		},
		CandidateName: candidateName,
		PositionTitle: positionTitle,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendOfferConfirmation(ctx context.Context, toEmail, candidateName string, accepted bool) error {
	content, err := renderEmailTemplate("offer_confirmation.html", offerConfirmationData{
		baseEmailData: baseEmailData{
			Title:   subjectOfferConfirmation,
			Heading: "Response received",
		},
		CandidateName: candidateName,
		Accepted:      accepted,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectOfferConfirmation, content)
}

func (s *SMTPSender) SendStaleReminder(ctx context.Context, toEmail, candidateName, stage string, daysSinceUpdate int) error {
	subject := fmt.Sprintf(subjectStaleReminderFmt, candidateName, daysSinceUpdate)
	content, err := renderEmailTemplate("stale_reminder.html", staleReminderData{
		baseEmailData: baseEmailData{
			Title:   subject,
			Heading: "Application needs attention",
		},
		CandidateName:   candidateName,
		Stage:           stage,
		DaysSinceUpdate: daysSinceUpdate,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}
