package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hireflow_backend/internal/events"
	"hireflow_backend/internal/offers/repository"
	"hireflow_backend/internal/pipeline"
	"hireflow_backend/platform/apperr"
	"hireflow_backend/platform/logger"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store honoring the compare-and-set contract of
// UpdateStatus, so guarded mutations behave as they do against Postgres.
type fakeStore struct {
	mu     sync.Mutex
	offers map[uuid.UUID]*repository.Offer

	// beforeUpdate, when set, runs before UpdateStatus acquires the lock.
	// Tests use it to slip in a competing write.
	beforeUpdate func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{offers: make(map[uuid.UUID]*repository.Offer)}
}

func (f *fakeStore) Create(_ context.Context, params repository.CreateParams) (repository.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC()
	offer := repository.Offer{
		ID:                uuid.New(),
		ApplicationID:     params.ApplicationID,
		Status:            params.Status,
		PositionTitle:     params.PositionTitle,
		SalaryAmountCents: params.SalaryAmountCents,
		SalaryCurrency:    params.SalaryCurrency,
		StartDate:         params.StartDate,
		ExpiresAt:         params.ExpiresAt,
		Attachment:        params.Attachment,
		SentAt:            params.SentAt,
		CreatedBy:         params.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if params.InitialEntry != nil {
		offer.NegotiationHistory = []repository.NegotiationEntry{*params.InitialEntry}
	}
	f.offers[offer.ID] = &offer
	return offer, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (repository.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	offer, ok := f.offers[id]
	if !ok {
		return repository.Offer{}, repository.ErrNotFound
	}
	return *offer, nil
}

func (f *fakeStore) GetActiveByApplication(_ context.Context, applicationID uuid.UUID) (repository.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *repository.Offer
	for _, offer := range f.offers {
		if offer.ApplicationID != applicationID || offer.Status.IsTerminal() {
			continue
		}
		if latest == nil || offer.CreatedAt.After(latest.CreatedAt) {
			latest = offer
		}
	}
	if latest == nil {
		return repository.Offer{}, repository.ErrNotFound
	}
	return *latest, nil
}

func (f *fakeStore) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]repository.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.Offer, 0)
	for _, offer := range f.offers {
		if offer.ApplicationID == applicationID {
			out = append(out, *offer)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, params repository.UpdateStatusParams) (repository.Offer, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	offer, ok := f.offers[params.OfferID]
	if !ok {
		return repository.Offer{}, repository.ErrNotFound
	}
	if offer.Status != params.ExpectedStatus {
		return repository.Offer{}, repository.ErrStatusConflict
	}

	now := time.Now().UTC()
	offer.Status = params.NewStatus
	if params.StampSentAt {
		offer.SentAt = &now
	}
	if params.StampViewedAt {
		offer.ViewedAt = &now
	}
	if params.StampResponseAt {
		offer.ResponseDate = &now
	}
	if params.Entry != nil {
		offer.NegotiationHistory = append(offer.NegotiationHistory, *params.Entry)
	}
	offer.UpdatedAt = now
	return *offer, nil
}

// setStatus mutates an offer directly, bypassing the compare-and-set guard.
func (f *fakeStore) setStatus(id uuid.UUID, status repository.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offers[id].Status = status
}

// fakeGateway stands in for the applications context. MarkOfferSent and
// MarkOfferAccepted move the tracked stage the way the real service does.
type fakeGateway struct {
	mu       sync.Mutex
	stages   map[uuid.UUID]pipeline.Stage
	sent     []uuid.UUID
	accepted []uuid.UUID
	degraded []string

	token string
	email string
	appID uuid.UUID

	markSentErr     error
	markAcceptedErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{stages: make(map[uuid.UUID]pipeline.Stage)}
}

func (g *fakeGateway) addApplication(stage pipeline.Stage) uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := uuid.New()
	g.stages[id] = stage
	return id
}

func (g *fakeGateway) CurrentStage(_ context.Context, applicationID uuid.UUID) (pipeline.Stage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	stage, ok := g.stages[applicationID]
	if !ok {
		return "", apperr.NotFound("application not found")
	}
	return stage, nil
}

func (g *fakeGateway) CandidateContact(_ context.Context, _ uuid.UUID) (string, string, error) {
	return "Jordan Baker", "jordan@example.com", nil
}

func (g *fakeGateway) MarkOfferSent(_ context.Context, applicationID uuid.UUID, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.markSentErr != nil {
		return g.markSentErr
	}
	g.sent = append(g.sent, applicationID)
	g.stages[applicationID] = pipeline.StageOfferSent
	return nil
}

func (g *fakeGateway) MarkOfferAccepted(_ context.Context, applicationID uuid.UUID, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.markAcceptedErr != nil {
		return g.markAcceptedErr
	}
	g.accepted = append(g.accepted, applicationID)
	g.stages[applicationID] = pipeline.StageOfferAccepted
	return nil
}

func (g *fakeGateway) ResolvePortal(_ context.Context, rawToken, email string) (uuid.UUID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if rawToken != g.token || email != g.email {
		return uuid.Nil, apperr.Unauthorized("invalid portal credentials")
	}
	return g.appID, nil
}

func (g *fakeGateway) RecordDegraded(_ context.Context, _ uuid.UUID, description string, _ error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.degraded = append(g.degraded, description)
}

func (g *fakeGateway) stageOf(id uuid.UUID) pipeline.Stage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stages[id]
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.EventName())
	}
	return out
}

func newTestService() (*Service, *fakeStore, *fakeGateway, *recordingBus) {
	store := newFakeStore()
	gateway := newFakeGateway()
	bus := &recordingBus{}
	return New(store, gateway, bus, logger.New("development")), store, gateway, bus
}

func createDraft(t *testing.T, svc *Service, applicationID uuid.UUID) repository.Offer {
	t.Helper()
	offer, err := svc.Create(context.Background(), CreateParams{
		ApplicationID: applicationID,
		PositionTitle: "Backend Engineer",
		Actor:         "recruiter@acme.test",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return offer
}

func TestCreateStartsAsDraft(t *testing.T) {
	svc, _, gateway, bus := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)

	offer := createDraft(t, svc, appID)

	if offer.Status != repository.StatusDraft {
		t.Fatalf("status = %s, want draft", offer.Status)
	}
	if offer.SentAt != nil {
		t.Fatalf("sentAt stamped on a draft")
	}
	if got := gateway.stageOf(appID); got != pipeline.StageInterview {
		t.Fatalf("stage moved to %s on draft creation", got)
	}
	if len(bus.names()) != 0 {
		t.Fatalf("events published on draft creation: %v", bus.names())
	}
}

func TestCreateSendImmediately(t *testing.T) {
	svc, _, gateway, bus := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)

	offer, err := svc.Create(context.Background(), CreateParams{
		ApplicationID:   appID,
		PositionTitle:   "Backend Engineer",
		SendImmediately: true,
		Actor:           "recruiter@acme.test",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if offer.Status != repository.StatusSent {
		t.Fatalf("status = %s, want sent", offer.Status)
	}
	if offer.SentAt == nil {
		t.Fatal("sentAt not stamped")
	}
	if len(offer.NegotiationHistory) != 1 || offer.NegotiationHistory[0].Action != "sent" {
		t.Fatalf("history = %+v, want single sent entry", offer.NegotiationHistory)
	}
	if got := gateway.stageOf(appID); got != pipeline.StageOfferSent {
		t.Fatalf("stage = %s, want %s", got, pipeline.StageOfferSent)
	}
	if names := bus.names(); len(names) != 1 || names[0] != "offers.sent" {
		t.Fatalf("events = %v, want [offers.sent]", names)
	}
}

func TestCreateRefusedForAbsorbingStage(t *testing.T) {
	svc, _, gateway, _ := newTestService()

	for _, stage := range []pipeline.Stage{pipeline.StageHired, pipeline.StageRejected, pipeline.StageWithdrawn} {
		appID := gateway.addApplication(stage)
		_, err := svc.Create(context.Background(), CreateParams{
			ApplicationID: appID,
			PositionTitle: "Backend Engineer",
			Actor:         "recruiter@acme.test",
		})
		if apperr.GetKind(err) != apperr.KindUnprocessable {
			t.Fatalf("stage %s: kind = %v, want KindUnprocessable", stage, apperr.GetKind(err))
		}
	}
}

func TestSecondActiveOfferConflicts(t *testing.T) {
	svc, _, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)

	createDraft(t, svc, appID)
	_, err := svc.Create(context.Background(), CreateParams{
		ApplicationID: appID,
		PositionTitle: "Backend Engineer II",
		Actor:         "recruiter@acme.test",
	})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want KindConflict", apperr.GetKind(err))
	}
}

func TestNewOfferAllowedAfterDecline(t *testing.T) {
	svc, store, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)

	first := createDraft(t, svc, appID)
	store.setStatus(first.ID, repository.StatusDeclined)

	if _, err := svc.Create(context.Background(), CreateParams{
		ApplicationID: appID,
		PositionTitle: "Backend Engineer",
		Actor:         "recruiter@acme.test",
	}); err != nil {
		t.Fatalf("Create after decline: %v", err)
	}
}

func TestSendDraft(t *testing.T) {
	svc, _, gateway, bus := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)

	sent, err := svc.Send(context.Background(), offer.ID, "recruiter@acme.test")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if sent.Status != repository.StatusSent {
		t.Fatalf("status = %s, want sent", sent.Status)
	}
	if sent.SentAt == nil {
		t.Fatal("sentAt not stamped")
	}
	if len(sent.NegotiationHistory) != 1 || sent.NegotiationHistory[0].By != "recruiter@acme.test" {
		t.Fatalf("history = %+v, want single entry by the recruiter", sent.NegotiationHistory)
	}
	if got := gateway.stageOf(appID); got != pipeline.StageOfferSent {
		t.Fatalf("stage = %s, want %s", got, pipeline.StageOfferSent)
	}
	if names := bus.names(); len(names) != 1 || names[0] != "offers.sent" {
		t.Fatalf("events = %v, want [offers.sent]", names)
	}
}

func TestSendNonDraftRefused(t *testing.T) {
	svc, store, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)
	store.setStatus(offer.ID, repository.StatusSent)

	_, err := svc.Send(context.Background(), offer.ID, "recruiter@acme.test")
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("kind = %v, want KindUnprocessable", apperr.GetKind(err))
	}
}

func TestSendSurvivesStageMoveFailure(t *testing.T) {
	svc, _, gateway, bus := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)
	gateway.markSentErr = errors.New("pool exhausted")

	sent, err := svc.Send(context.Background(), offer.ID, "recruiter@acme.test")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sent.Status != repository.StatusSent {
		t.Fatalf("status = %s, want sent", sent.Status)
	}
	if len(gateway.degraded) != 1 {
		t.Fatalf("degraded records = %d, want 1", len(gateway.degraded))
	}
	if names := bus.names(); len(names) != 1 || names[0] != "offers.sent" {
		t.Fatalf("events = %v, want [offers.sent]", names)
	}
}

func TestAcceptMovesApplication(t *testing.T) {
	svc, store, gateway, bus := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)
	if _, err := svc.Send(context.Background(), offer.ID, "recruiter@acme.test"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	accepted, err := svc.Respond(context.Background(), offer.ID, "accept", "candidate", "")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if accepted.Status != repository.StatusAccepted {
		t.Fatalf("status = %s, want accepted", accepted.Status)
	}
	if accepted.ResponseDate == nil {
		t.Fatal("responseDate not stamped")
	}
	if len(accepted.NegotiationHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(accepted.NegotiationHistory))
	}
	last := accepted.NegotiationHistory[1]
	if last.Action != "accept" || last.By != "candidate" {
		t.Fatalf("last entry = %+v, want accept by candidate", last)
	}
	if len(gateway.accepted) != 1 || gateway.accepted[0] != appID {
		t.Fatalf("MarkOfferAccepted calls = %v, want [%s]", gateway.accepted, appID)
	}
	if got := gateway.stageOf(appID); got != pipeline.StageOfferAccepted {
		t.Fatalf("stage = %s, want %s", got, pipeline.StageOfferAccepted)
	}
	if names := bus.names(); len(names) != 2 || names[1] != "offers.responded" {
		t.Fatalf("events = %v, want offers.responded last", names)
	}

	reloaded, err := store.GetByID(context.Background(), offer.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.Status != repository.StatusAccepted {
		t.Fatalf("persisted status = %s, want accepted", reloaded.Status)
	}
}

func TestDeclineLeavesApplicationAtOfferSent(t *testing.T) {
	svc, _, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)
	if _, err := svc.Send(context.Background(), offer.ID, "recruiter@acme.test"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	declined, err := svc.Respond(context.Background(), offer.ID, "decline", "candidate", "took another role")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if declined.Status != repository.StatusDeclined {
		t.Fatalf("status = %s, want declined", declined.Status)
	}
	if len(gateway.accepted) != 0 {
		t.Fatalf("MarkOfferAccepted called on decline")
	}
	if got := gateway.stageOf(appID); got != pipeline.StageOfferSent {
		t.Fatalf("stage = %s, want %s after decline", got, pipeline.StageOfferSent)
	}
}

func TestRespondTerminalRefused(t *testing.T) {
	svc, store, gateway, _ := newTestService()

	terminals := []repository.Status{
		repository.StatusAccepted,
		repository.StatusRejected,
		repository.StatusDeclined,
		repository.StatusExpired,
		repository.StatusWithdrawn,
	}
	for _, status := range terminals {
		appID := gateway.addApplication(pipeline.StageInterview)
		offer := createDraft(t, svc, appID)
		store.setStatus(offer.ID, status)

		_, err := svc.Respond(context.Background(), offer.ID, "accept", "candidate", "")
		if apperr.GetKind(err) != apperr.KindUnprocessable {
			t.Fatalf("status %s: kind = %v, want KindUnprocessable", status, apperr.GetKind(err))
		}
	}
}

func TestRespondDraftRefused(t *testing.T) {
	svc, _, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)

	_, err := svc.Respond(context.Background(), offer.ID, "accept", "candidate", "")
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("kind = %v, want KindUnprocessable", apperr.GetKind(err))
	}
}

func TestRespondUnknownResponse(t *testing.T) {
	svc, _, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)

	_, err := svc.Respond(context.Background(), offer.ID, "maybe", "candidate", "")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want KindValidation", apperr.GetKind(err))
	}
}

func TestRespondLosesRace(t *testing.T) {
	svc, store, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)
	if _, err := svc.Send(context.Background(), offer.ID, "recruiter@acme.test"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// A competing write lands between the read and the guarded update.
	store.beforeUpdate = func() {
		store.beforeUpdate = nil
		store.setStatus(offer.ID, repository.StatusViewed)
	}

	_, err := svc.Respond(context.Background(), offer.ID, "accept", "candidate", "")
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want KindConflict", apperr.GetKind(err))
	}
	if len(gateway.accepted) != 0 {
		t.Fatalf("MarkOfferAccepted called after a lost race")
	}
}

func TestSetStatusRecordsTransition(t *testing.T) {
	svc, store, gateway, bus := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)
	store.setStatus(offer.ID, repository.StatusSent)

	updated, err := svc.SetStatus(context.Background(), offer.ID, repository.StatusNegotiating, "recruiter@acme.test", "countered on salary")
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if updated.Status != repository.StatusNegotiating {
		t.Fatalf("status = %s, want negotiating", updated.Status)
	}
	last := updated.NegotiationHistory[len(updated.NegotiationHistory)-1]
	if last.Action != "status_changed:sent->negotiating" {
		t.Fatalf("entry action = %q", last.Action)
	}
	if names := bus.names(); len(names) != 1 || names[0] != "offers.status.changed" {
		t.Fatalf("events = %v, want [offers.status.changed]", names)
	}
}

func TestSetStatusNonAdminRefused(t *testing.T) {
	svc, _, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)

	_, err := svc.SetStatus(context.Background(), offer.ID, repository.StatusAccepted, "recruiter@acme.test", "")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want KindValidation", apperr.GetKind(err))
	}
}

func TestSetStatusTerminalRefused(t *testing.T) {
	svc, store, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	offer := createDraft(t, svc, appID)
	store.setStatus(offer.ID, repository.StatusExpired)

	_, err := svc.SetStatus(context.Background(), offer.ID, repository.StatusWithdrawn, "recruiter@acme.test", "")
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("kind = %v, want KindUnprocessable", apperr.GetKind(err))
	}
}

func portalGateway(gateway *fakeGateway, appID uuid.UUID) {
	gateway.token = "portal-token"
	gateway.email = "jordan@example.com"
	gateway.appID = appID
}

func TestPortalViewMarksViewed(t *testing.T) {
	svc, _, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	portalGateway(gateway, appID)
	offer := createDraft(t, svc, appID)
	if _, err := svc.Send(context.Background(), offer.ID, "recruiter@acme.test"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	viewed, err := svc.PortalViewOffer(context.Background(), "portal-token", "jordan@example.com")
	if err != nil {
		t.Fatalf("PortalViewOffer: %v", err)
	}
	if viewed.Status != repository.StatusViewed {
		t.Fatalf("status = %s, want viewed", viewed.Status)
	}
	if viewed.ViewedAt == nil {
		t.Fatal("viewedAt not stamped")
	}

	// A second view is a plain read.
	again, err := svc.PortalViewOffer(context.Background(), "portal-token", "jordan@example.com")
	if err != nil {
		t.Fatalf("second PortalViewOffer: %v", err)
	}
	if again.Status != repository.StatusViewed {
		t.Fatalf("status after second view = %s, want viewed", again.Status)
	}
}

func TestPortalViewDraftHidden(t *testing.T) {
	svc, _, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	portalGateway(gateway, appID)
	createDraft(t, svc, appID)

	_, err := svc.PortalViewOffer(context.Background(), "portal-token", "jordan@example.com")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want KindNotFound", apperr.GetKind(err))
	}
}

func TestPortalViewBadCredentials(t *testing.T) {
	svc, _, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	portalGateway(gateway, appID)

	_, err := svc.PortalViewOffer(context.Background(), "portal-token", "intruder@example.com")
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("kind = %v, want KindUnauthorized", apperr.GetKind(err))
	}
}

func TestPortalRespondAccept(t *testing.T) {
	svc, _, gateway, _ := newTestService()
	appID := gateway.addApplication(pipeline.StageInterview)
	portalGateway(gateway, appID)
	offer := createDraft(t, svc, appID)
	if _, err := svc.Send(context.Background(), offer.ID, "recruiter@acme.test"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	accepted, err := svc.PortalRespond(context.Background(), "portal-token", "jordan@example.com", "accept", "")
	if err != nil {
		t.Fatalf("PortalRespond: %v", err)
	}
	if accepted.Status != repository.StatusAccepted {
		t.Fatalf("status = %s, want accepted", accepted.Status)
	}
	last := accepted.NegotiationHistory[len(accepted.NegotiationHistory)-1]
	if last.By != "candidate" {
		t.Fatalf("entry by = %q, want candidate", last.By)
	}
	if got := gateway.stageOf(appID); got != pipeline.StageOfferAccepted {
		t.Fatalf("stage = %s, want %s", got, pipeline.StageOfferAccepted)
	}
}
