package notification

import (
	"context"
	"strings"
	"testing"

	"hireflow_backend/internal/events"
	jobsrepo "hireflow_backend/internal/jobs/repository"
	jobssvc "hireflow_backend/internal/jobs/service"
	"hireflow_backend/platform/logger"

	"github.com/google/uuid"
)

// Both binaries hand the subscribers a jobs service.
var _ JobSource = (*jobssvc.Service)(nil)

func TestRenderTemplates(t *testing.T) {
	cases := []struct {
		name string
		data any
		want string
	}{
		{"application_received.html", applicationReceivedData{
			baseEmailData: baseEmailData{Title: "t", Heading: "h", CTALabel: "Track", CTAURL: "https://portal.test/x"},
			CandidateName: "Jordan Baker",
			JobTitle:      "Backend Engineer",
		}, "Backend Engineer"},
		{"stage_changed.html", stageChangedData{
			baseEmailData: baseEmailData{Title: "t", Heading: "h"},
			CandidateName: "Jordan Baker",
			StatusLabel:   "Interview",
		}, "Interview"},
		{"application_rejected.html", applicationRejectedData{
			baseEmailData: baseEmailData{Title: "t", Heading: "h"},
			CandidateName: "Jordan Baker",
			Reason:        "Position filled",
		}, "Position filled"},
		{"offer_sent.html", offerSentData{
			baseEmailData: baseEmailData{Title: "t", Heading: "h"},
			CandidateName: "Jordan Baker",
			PositionTitle: "Backend Engineer",
		}, "Backend Engineer"},
		{"offer_confirmation.html", offerConfirmationData{
			baseEmailData: baseEmailData{Title: "t", Heading: "h"},
			CandidateName: "Jordan Baker",
			Accepted:      true,
		}, "Welcome aboard"},
		{"stale_reminder.html", staleReminderData{
			baseEmailData:   baseEmailData{Title: "t", Heading: "h"},
			CandidateName:   "Jordan Baker",
			Stage:           "screening",
			DaysSinceUpdate: 9,
		}, "9 days"},
	}

	for _, tc := range cases {
		content, err := renderEmailTemplate(tc.name, tc.data)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !strings.Contains(content, tc.want) {
			t.Errorf("%s: rendered content missing %q", tc.name, tc.want)
		}
	}
}

type recordingSender struct {
	NoopSender
	received     []string
	stageChanges []string
	rejections   []string
	offers       []string
}

func (r *recordingSender) SendApplicationReceived(_ context.Context, toEmail, _, _, _ string) error {
	r.received = append(r.received, toEmail)
	return nil
}

func (r *recordingSender) SendStageChanged(_ context.Context, _, _, statusLabel, _ string) error {
	r.stageChanges = append(r.stageChanges, statusLabel)
	return nil
}

func (r *recordingSender) SendApplicationRejected(_ context.Context, _, _, reason string) error {
	r.rejections = append(r.rejections, reason)
	return nil
}

func (r *recordingSender) SendOfferSent(_ context.Context, _, _, positionTitle, _ string) error {
	r.offers = append(r.offers, positionTitle)
	return nil
}

type staticJobs struct{}

func (staticJobs) Get(_ context.Context, _ uuid.UUID) (jobsrepo.Job, error) {
	return jobsrepo.Job{Title: "Backend Engineer"}, nil
}

type staticConfig struct{}

func (staticConfig) GetAppBaseURL() string    { return "https://console.test" }
func (staticConfig) GetPortalBaseURL() string { return "https://portal.test" }

func newTestSubscribers() (*Subscribers, *recordingSender) {
	sender := &recordingSender{}
	return NewSubscribers(sender, staticJobs{}, staticConfig{}, logger.New("development")), sender
}

func TestStageChangedOnlyOnVisibleStatusChange(t *testing.T) {
	subs, sender := newTestSubscribers()

	// shortlisting and screening share the same candidate-visible status.
	if err := subs.onStageChanged(context.Background(), events.StageChanged{
		FromStage: "shortlisting", ToStage: "screening",
		CandidateEmail: "jordan@example.com", CandidateName: "Jordan Baker",
	}); err != nil {
		t.Fatal(err)
	}
	if len(sender.stageChanges) != 0 {
		t.Fatalf("email sent for invisible status change: %v", sender.stageChanges)
	}

	if err := subs.onStageChanged(context.Background(), events.StageChanged{
		FromStage: "screening", ToStage: "interview",
		CandidateEmail: "jordan@example.com", CandidateName: "Jordan Baker",
	}); err != nil {
		t.Fatal(err)
	}
	if len(sender.stageChanges) != 1 || sender.stageChanges[0] != "Interview" {
		t.Fatalf("stage changes = %v, want [Interview]", sender.stageChanges)
	}
}

func TestStageChangedSkipsDedicatedEmails(t *testing.T) {
	subs, sender := newTestSubscribers()

	for _, to := range []string{"rejected", "offer-sent"} {
		if err := subs.onStageChanged(context.Background(), events.StageChanged{
			FromStage: "interview", ToStage: to,
			CandidateEmail: "jordan@example.com", CandidateName: "Jordan Baker",
		}); err != nil {
			t.Fatal(err)
		}
	}
	if len(sender.stageChanges) != 0 {
		t.Fatalf("stage emails sent for stages with dedicated emails: %v", sender.stageChanges)
	}
}

func TestApplicationCreatedSendsPortalLink(t *testing.T) {
	subs, sender := newTestSubscribers()

	if err := subs.onApplicationCreated(context.Background(), events.ApplicationCreated{
		ApplicationID:  uuid.New(),
		JobID:          uuid.New(),
		CandidateName:  "Jordan Baker",
		CandidateEmail: "jordan@example.com",
		PortalToken:    "tok123",
	}); err != nil {
		t.Fatal(err)
	}
	if len(sender.received) != 1 || sender.received[0] != "jordan@example.com" {
		t.Fatalf("received emails = %v", sender.received)
	}
}

func TestSubscribersRegisterAndDispatch(t *testing.T) {
	subs, sender := newTestSubscribers()
	bus := events.NewInMemoryBus(logger.New("development"))
	subs.Register(bus)

	if err := bus.PublishSync(context.Background(), events.ApplicationRejected{
		BaseEvent:      events.NewBaseEvent(),
		ApplicationID:  uuid.New(),
		CandidateName:  "Jordan Baker",
		CandidateEmail: "jordan@example.com",
		Reason:         "Position filled",
	}); err != nil {
		t.Fatal(err)
	}
	if len(sender.rejections) != 1 || sender.rejections[0] != "Position filled" {
		t.Fatalf("rejections = %v", sender.rejections)
	}
}
