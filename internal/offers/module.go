// Package offers provides the offer lifecycle bounded context: drafting,
// sending, candidate responses and administrative status changes.
package offers

import (
	"hireflow_backend/internal/events"
	apphttp "hireflow_backend/internal/http"
	"hireflow_backend/internal/offers/handler"
	"hireflow_backend/internal/offers/repository"
	"hireflow_backend/internal/offers/service"
	"hireflow_backend/platform/logger"
	"hireflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the offers bounded context implementing http.Module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
}

// NewModule creates and wires the offers module. The gateway is the
// applications adapter built at the composition root.
func NewModule(pool *pgxpool.Pool, gateway service.ApplicationGateway, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, gateway, bus, log)

	return &Module{
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublic(svc, val),
		service:       svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "offers"
}

// Service exposes the offer service for the scheduler worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts console and portal routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/offers"))
	m.handler.RegisterApplicationRoutes(ctx.Protected.Group("/applications"))
	m.publicHandler.RegisterRoutes(ctx.Portal)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
