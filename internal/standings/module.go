package standings

import (
	"context"
	"log/slog"

	"go-timers/internal/standings/routes"
	"go-timers/internal/standings/services"
	"go-timers/pkg/database"
	"go-timers/pkg/module"
	"go-timers/pkg/permissions"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the standings module.
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Routes
}

func New(mongodb *database.MongoDB, redis *database.Redis, pm *permissions.Manager) (*Module, error) {
	repository := services.NewRepository(mongodb)
	if err := repository.CreateIndexes(context.Background()); err != nil {
		slog.Warn("Failed to create standing indexes", "error", err)
	}

	service := services.NewService(repository)

	return &Module{
		BaseModule: module.NewBaseModule("standings", mongodb, redis),
		service:    service,
		routes:     routes.NewRoutes(service, pm),
	}, nil
}

// RegisterRoutes registers all standing routes with the Huma API.
func (m *Module) RegisterRoutes(api huma.API) {
	m.routes.Register(api, "/standings")
}

// Service returns the standings service for other modules.
func (m *Module) Service() *services.Service {
	return m.service
}
