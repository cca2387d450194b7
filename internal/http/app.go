package http

import (
	"context"

	"hireflow_backend/internal/events"
	"hireflow_backend/platform/config"
	"hireflow_backend/platform/logger"
)

// RouterConfig is the slice of configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs the readiness probe, normally a pool ping.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App carries everything the router needs, assembled by the composition
// root in cmd/api.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}
