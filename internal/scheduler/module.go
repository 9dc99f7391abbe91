package scheduler

import (
	"context"
	"log/slog"

	"go-timers/pkg/config"
	"go-timers/pkg/database"
	"go-timers/pkg/module"
	"go-timers/pkg/permissions"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the scheduler module. It owns the cron engine and the
// fixed set of background jobs the service runs.
type Module struct {
	*module.BaseModule
	engine      *Engine
	permissions *permissions.Manager
}

// Jobs are the callbacks the scheduler drives, supplied by the owning
// domain modules.
type Jobs struct {
	ImportCampaigns JobFunc
	NotifyTimers    JobFunc
	RefreshUniverse JobFunc
}

func New(mongodb *database.MongoDB, redis *database.Redis, jobs Jobs, pm *permissions.Manager) (*Module, error) {
	engine := NewEngine()

	registered := []Job{
		{
			Name:        "campaign-import",
			Description: "Import sovereignty campaigns as timers",
			Schedule:    config.GetEnv("IMPORT_SCHEDULE", "0 */10 * * * *"),
			Run:         jobs.ImportCampaigns,
		},
		{
			Name:        "timer-notify",
			Description: "Send reminders for expiring timers",
			Schedule:    config.GetEnv("NOTIFY_SCHEDULE", "0 * * * * *"),
			Run:         jobs.NotifyTimers,
		},
		{
			Name:        "universe-refresh",
			Description: "Rebuild solar system reference data",
			Schedule:    config.GetEnv("UNIVERSE_REFRESH_SCHEDULE", "0 0 4 * * 0"),
			Run:         jobs.RefreshUniverse,
		},
	}

	for _, job := range registered {
		if err := engine.Register(job); err != nil {
			return nil, err
		}
	}

	return &Module{
		BaseModule:  module.NewBaseModule("scheduler", mongodb, redis),
		engine:      engine,
		permissions: pm,
	}, nil
}

// RegisterRoutes registers the admin scheduler routes with the Huma API.
func (m *Module) RegisterRoutes(api huma.API) {
	m.registerRoutes(api, "/scheduler")
}

// StartBackgroundTasks starts the cron engine and keeps it running until
// the module stops.
func (m *Module) StartBackgroundTasks(ctx context.Context) {
	m.engine.Start()

	select {
	case <-ctx.Done():
	case <-m.StopChannel():
	}

	m.engine.Stop()
	slog.Info("Scheduler background tasks stopped")
}
