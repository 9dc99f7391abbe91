package timers

import (
	"context"
	"log/slog"

	"go-timers/internal/timers/routes"
	"go-timers/internal/timers/services"
	"go-timers/pkg/database"
	"go-timers/pkg/evegateway"
	"go-timers/pkg/module"
	"go-timers/pkg/permissions"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the timers module: the store-facing service plus the
// campaign importer and the reminder notifier built on top of it.
type Module struct {
	*module.BaseModule
	service       *services.Service
	importService *services.ImportService
	notifyService *services.NotifyService
	routes        *routes.Routes
}

// SystemService is the universe lookup surface the timers module needs.
type SystemService interface {
	routes.SystemResolver
	services.SystemResolver
}

// MessageSender is re-exported for wiring in main.
type MessageSender = services.MessageSender

// New creates the timers module. sender may be nil when no webhook is
// configured; the notify job then becomes a no-op.
func New(
	mongodb *database.MongoDB,
	redis *database.Redis,
	esi *evegateway.Client,
	systems SystemService,
	standings services.StandingsProvider,
	sender services.MessageSender,
	pm *permissions.Manager,
) (*Module, error) {
	repository := services.NewRepository(mongodb)
	if err := repository.CreateIndexes(context.Background()); err != nil {
		slog.Warn("Failed to create timer indexes", "error", err)
	}

	service := services.NewService(repository)

	m := &Module{
		BaseModule:    module.NewBaseModule("timers", mongodb, redis),
		service:       service,
		importService: services.NewImportService(esi, systems, standings, service),
		routes:        routes.NewRoutes(service, systems, pm),
	}

	if sender != nil {
		m.notifyService = services.NewNotifyService(service, sender)
	}

	return m, nil
}

// RegisterRoutes registers all timer routes with the Huma API.
func (m *Module) RegisterRoutes(api huma.API) {
	m.routes.Register(api, "/timers")
}

// Service returns the timer service for other modules.
func (m *Module) Service() *services.Service {
	return m.service
}

// RunImport performs one campaign reconciliation pass.
func (m *Module) RunImport(ctx context.Context) error {
	return m.importService.Run(ctx)
}

// RunNotify performs one notification pass.
func (m *Module) RunNotify(ctx context.Context) error {
	if m.notifyService == nil {
		slog.InfoContext(ctx, "No notification webhook configured, skipping notify run")
		return nil
	}
	return m.notifyService.Run(ctx)
}
