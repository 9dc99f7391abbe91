package module

import (
	"context"
	"log/slog"

	"go-timers/pkg/database"
	"go-timers/pkg/handlers"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module defines the interface that all application modules must implement
type Module interface {
	// RegisterRoutes registers the module's HTTP operations with the Huma API
	RegisterRoutes(api huma.API)

	// RegisterHealthRoute registers the module's health endpoint on the router
	RegisterHealthRoute(r chi.Router)

	// StartBackgroundTasks starts any background processing for this module
	StartBackgroundTasks(ctx context.Context)

	// Stop gracefully stops the module and its background tasks
	Stop()

	// Name returns the module name for logging and identification
	Name() string
}

// BaseModule provides common functionality for all modules
type BaseModule struct {
	name     string
	mongodb  *database.MongoDB
	redis    *database.Redis
	stopCh   chan struct{}
	stopOnce chan struct{}
}

// NewBaseModule creates a new base module with common dependencies
func NewBaseModule(name string, mongodb *database.MongoDB, redis *database.Redis) *BaseModule {
	return &BaseModule{
		name:     name,
		mongodb:  mongodb,
		redis:    redis,
		stopCh:   make(chan struct{}),
		stopOnce: make(chan struct{}),
	}
}

// Name returns the module name
func (b *BaseModule) Name() string {
	return b.name
}

// MongoDB returns the MongoDB connection
func (b *BaseModule) MongoDB() *database.MongoDB {
	return b.mongodb
}

// Redis returns the Redis connection
func (b *BaseModule) Redis() *database.Redis {
	return b.redis
}

// StopChannel returns the stop channel for background tasks
func (b *BaseModule) StopChannel() <-chan struct{} {
	return b.stopCh
}

// Stop gracefully stops the module
func (b *BaseModule) Stop() {
	select {
	case <-b.stopOnce:
		return
	default:
		close(b.stopOnce)
		close(b.stopCh)
		slog.Info("Module stopped", "module", b.name)
	}
}

// StartBackgroundTasks provides a default no-op implementation
func (b *BaseModule) StartBackgroundTasks(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-b.stopCh:
	}
}

// RegisterHealthRoute registers the health endpoint for this module at
// /<module>/health, probing the database handles the module actually holds.
func (b *BaseModule) RegisterHealthRoute(r chi.Router) {
	checks := make(map[string]handlers.HealthChecker)
	if b.mongodb != nil {
		checks["mongodb"] = b.mongodb.HealthCheck
	}
	if b.redis != nil {
		checks["redis"] = b.redis.HealthCheck
	}

	r.Get("/"+b.name+"/health", handlers.HealthHandler(b.name, checks))
}
