package universe

import (
	"context"
	"log/slog"

	"go-timers/internal/universe/routes"
	"go-timers/internal/universe/services"
	"go-timers/pkg/database"
	"go-timers/pkg/evegateway"
	"go-timers/pkg/module"
	"go-timers/pkg/permissions"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the universe module: the system reference lookup plus
// the refresh job that rebuilds it from the game's public endpoints.
type Module struct {
	*module.BaseModule
	service        *services.Service
	refreshService *services.RefreshService
	routes         *routes.Routes
}

func New(mongodb *database.MongoDB, redis *database.Redis, esi *evegateway.Client, pm *permissions.Manager) (*Module, error) {
	repository := services.NewRepository(mongodb)
	if err := repository.CreateIndexes(context.Background()); err != nil {
		slog.Warn("Failed to create system indexes", "error", err)
	}

	service := services.NewService(repository)

	return &Module{
		BaseModule:     module.NewBaseModule("universe", mongodb, redis),
		service:        service,
		refreshService: services.NewRefreshService(repository, esi),
		routes:         routes.NewRoutes(service, pm),
	}, nil
}

// RegisterRoutes registers all universe routes with the Huma API.
func (m *Module) RegisterRoutes(api huma.API) {
	m.routes.Register(api, "/universe")
}

// Service returns the lookup service for other modules.
func (m *Module) Service() *services.Service {
	return m.service
}

// RunRefresh performs one full reference data rebuild.
func (m *Module) RunRefresh(ctx context.Context) error {
	return m.refreshService.Run(ctx)
}
