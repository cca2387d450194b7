// Package analytics provides read-only hiring funnel reporting.
package analytics

import (
	"hireflow_backend/internal/analytics/handler"
	"hireflow_backend/internal/analytics/repository"
	"hireflow_backend/internal/analytics/service"
	apphttp "hireflow_backend/internal/http"
	"hireflow_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the analytics bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and wires the analytics module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), log)
	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "analytics"
}

// RegisterRoutes mounts the console routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/analytics"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
