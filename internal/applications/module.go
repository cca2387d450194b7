// Package applications provides the application aggregate bounded context:
// intake, stage transitions, the stage history ledger and the audit trail.
package applications

import (
	"hireflow_backend/internal/applications/handler"
	"hireflow_backend/internal/applications/repository"
	"hireflow_backend/internal/applications/service"
	"hireflow_backend/internal/events"
	apphttp "hireflow_backend/internal/http"
	"hireflow_backend/platform/logger"
	"hireflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the applications bounded context implementing http.Module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	uploadHandler *handler.UploadHandler
	service       *service.Service
	repo          *repository.Repository
	validator     *validator.Validator
}

// NewModule creates and wires the applications module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)

	return &Module{
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublic(svc, val),
		service:       svc,
		repo:          repo,
		validator:     val,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "applications"
}

// Service exposes the application service for the offers module, the
// scheduler worker and adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes the store for read-only collaborators (analytics).
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// SetScoringEnqueuer injects the background scoring task client.
func (m *Module) SetScoringEnqueuer(enqueuer service.ScoringEnqueuer) {
	m.service.SetScoringEnqueuer(enqueuer)
}

// SetResumeStore enables the presigned resume upload route.
func (m *Module) SetResumeStore(store handler.ResumePresigner) {
	m.uploadHandler = handler.NewUpload(store, m.validator)
}

// RegisterRoutes mounts console and portal routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/applications"))
	if m.uploadHandler != nil {
		m.uploadHandler.RegisterRoutes(ctx.Protected.Group("/uploads"))
	}
	m.publicHandler.RegisterRoutes(ctx.Portal)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
