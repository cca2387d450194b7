// Package jobs provides job openings, the reference data applications
// point at.
package jobs

import (
	apphttp "hireflow_backend/internal/http"
	"hireflow_backend/internal/jobs/handler"
	"hireflow_backend/internal/jobs/repository"
	"hireflow_backend/internal/jobs/service"
	"hireflow_backend/platform/logger"
	"hireflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the jobs bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and wires the jobs module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(repository.New(pool), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "jobs"
}

// Service exposes the job service for collaborators.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the console routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/jobs"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
