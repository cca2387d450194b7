// Package auth provides the recruiter account bounded context module.
package auth

import (
	"hireflow_backend/internal/auth/handler"
	"hireflow_backend/internal/auth/repository"
	"hireflow_backend/internal/auth/service"
	apphttp "hireflow_backend/internal/http"
	"hireflow_backend/platform/config"
	"hireflow_backend/platform/httpkit"
	"hireflow_backend/platform/logger"
	"hireflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for use by other modules (recruiter lookup).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Login gets the stricter limiter
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/users/me", m.handler.GetMe)
	ctx.Protected.GET("/users", m.handler.ListRecruiters)
	ctx.Protected.POST("/users", httpkit.RequireRole("admin"), m.handler.Register)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
