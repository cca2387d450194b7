package notification

import (
	"context"
	"fmt"

	"hireflow_backend/internal/events"
	jobsrepo "hireflow_backend/internal/jobs/repository"
	"hireflow_backend/internal/pipeline"
	"hireflow_backend/platform/config"
	"hireflow_backend/platform/logger"

	"github.com/google/uuid"
)

// JobSource resolves job titles for candidate emails.
type JobSource interface {
	Get(ctx context.Context, id uuid.UUID) (jobsrepo.Job, error)
}

// Subscribers connects domain events to the email sender. Delivery
// failures are logged and never propagate back to the publisher.
type Subscribers struct {
	sender Sender
	jobs   JobSource
	cfg    config.NotificationConfig
	log    *logger.Logger
}

func NewSubscribers(sender Sender, jobs JobSource, cfg config.NotificationConfig, log *logger.Logger) *Subscribers {
	return &Subscribers{sender: sender, jobs: jobs, cfg: cfg, log: log}
}

// Register subscribes all notification handlers on the bus.
func (s *Subscribers) Register(bus events.Bus) {
	bus.Subscribe(events.ApplicationCreated{}.EventName(), events.HandlerFunc(s.onApplicationCreated))
	bus.Subscribe(events.StageChanged{}.EventName(), events.HandlerFunc(s.onStageChanged))
	bus.Subscribe(events.ApplicationRejected{}.EventName(), events.HandlerFunc(s.onApplicationRejected))
	bus.Subscribe(events.OfferSent{}.EventName(), events.HandlerFunc(s.onOfferSent))
	bus.Subscribe(events.OfferResponded{}.EventName(), events.HandlerFunc(s.onOfferResponded))
	bus.Subscribe(events.ApplicationStale{}.EventName(), events.HandlerFunc(s.onApplicationStale))
}

func (s *Subscribers) onApplicationCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ApplicationCreated)
	if !ok {
		return nil
	}

	jobTitle := "the position"
	if job, err := s.jobs.Get(ctx, e.JobID); err == nil {
		jobTitle = job.Title
	}

	portalURL := fmt.Sprintf("%s/applications/%s", s.cfg.GetPortalBaseURL(), e.PortalToken)
	if err := s.sender.SendApplicationReceived(ctx, e.CandidateEmail, e.CandidateName, jobTitle, portalURL); err != nil {
		s.log.Error("failed to send application-received email",
			"applicationId", e.ApplicationID, "error", err)
	}
	return nil
}

func (s *Subscribers) onStageChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.StageChanged)
	if !ok {
		return nil
	}

	from := pipeline.Stage(e.FromStage)
	to := pipeline.Stage(e.ToStage)
	// Rejections and offer sends get dedicated emails; only notify the
	// candidate when their visible status actually changes.
	if to == pipeline.StageRejected || to == pipeline.StageOfferSent {
		return nil
	}
	if pipeline.ProjectStatus(from) == pipeline.ProjectStatus(to) {
		return nil
	}

	label := pipeline.Label(to)
	if err := s.sender.SendStageChanged(ctx, e.CandidateEmail, e.CandidateName, label, s.cfg.GetPortalBaseURL()); err != nil {
		s.log.Error("failed to send stage-changed email",
			"applicationId", e.ApplicationID, "error", err)
	}
	return nil
}

func (s *Subscribers) onApplicationRejected(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ApplicationRejected)
	if !ok {
		return nil
	}
	if err := s.sender.SendApplicationRejected(ctx, e.CandidateEmail, e.CandidateName, e.Reason); err != nil {
		s.log.Error("failed to send rejection email",
			"applicationId", e.ApplicationID, "error", err)
	}
	return nil
}

func (s *Subscribers) onOfferSent(ctx context.Context, event events.Event) error {
	e, ok := event.(events.OfferSent)
	if !ok {
		return nil
	}
	if err := s.sender.SendOfferSent(ctx, e.CandidateEmail, e.CandidateName, e.PositionTitle, s.cfg.GetPortalBaseURL()); err != nil {
		s.log.Error("failed to send offer email",
			"offerId", e.OfferID, "error", err)
	}
	return nil
}

func (s *Subscribers) onOfferResponded(ctx context.Context, event events.Event) error {
	e, ok := event.(events.OfferResponded)
	if !ok {
		return nil
	}
	accepted := e.Response == "accept"
	if err := s.sender.SendOfferConfirmation(ctx, e.CandidateEmail, e.CandidateName, accepted); err != nil {
		s.log.Error("failed to send offer confirmation email",
			"offerId", e.OfferID, "error", err)
	}
	return nil
}

func (s *Subscribers) onApplicationStale(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ApplicationStale)
	if !ok {
		return nil
	}
	if e.RecruiterEmail == "" {
		return nil
	}
	if err := s.sender.SendStaleReminder(ctx, e.RecruiterEmail, e.CandidateName, e.Stage, e.DaysSinceUpdate); err != nil {
		s.log.Error("failed to send stale reminder email",
			"applicationId", e.ApplicationID, "error", err)
	}
	return nil
}
