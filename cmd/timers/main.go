package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go-timers/internal/scheduler"
	"go-timers/internal/standings"
	"go-timers/internal/timers"
	"go-timers/internal/universe"
	"go-timers/pkg/app"
	"go-timers/pkg/config"
	"go-timers/pkg/discord"
	"go-timers/pkg/evegateway"
	timersMiddleware "go-timers/pkg/middleware"
	"go-timers/pkg/module"
	"go-timers/pkg/permissions"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "go.uber.org/automaxprocs"
)

// customLoggerMiddleware logs requests but excludes health check endpoints
func customLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/health") {
			next.ServeHTTP(w, r)
			return
		}

		middleware.Logger(next).ServeHTTP(w, r)
	})
}

func main() {
	ctx := context.Background()

	appCtx, err := app.InitializeApp("timers")
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer appCtx.Shutdown(ctx)

	permissionManager, err := permissions.NewManager()
	if err != nil {
		log.Fatalf("Failed to initialize permissions: %v", err)
	}

	authenticator := timersMiddleware.NewJWTAuthenticator()

	// Chi router and global middleware
	r := chi.NewRouter()
	r.Use(customLoggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(config.GetDurationEnv("REQUEST_TIMEOUT", 60*time.Second)))
	r.Use(timersMiddleware.TracingMiddleware)
	r.Use(authenticator.Middleware)

	esiClient := evegateway.NewClient(appCtx.Redis)

	var sender *discord.WebhookClient
	if webhookURL := config.GetEnv("NOTIFY_DISCORD_WEBHOOK", ""); webhookURL != "" {
		sender = discord.NewWebhookClient(webhookURL)
	} else {
		slog.Warn("NOTIFY_DISCORD_WEBHOOK not set, timer notifications disabled")
	}

	// Initialize modules, dependency order
	universeModule, err := universe.New(appCtx.MongoDB, appCtx.Redis, esiClient, permissionManager)
	if err != nil {
		log.Fatalf("Failed to initialize universe module: %v", err)
	}

	standingsModule, err := standings.New(appCtx.MongoDB, appCtx.Redis, permissionManager)
	if err != nil {
		log.Fatalf("Failed to initialize standings module: %v", err)
	}

	var timerSender timers.MessageSender
	if sender != nil {
		timerSender = sender
	}
	timersModule, err := timers.New(
		appCtx.MongoDB, appCtx.Redis, esiClient,
		universeModule.Service(), standingsModule.Service(),
		timerSender, permissionManager,
	)
	if err != nil {
		log.Fatalf("Failed to initialize timers module: %v", err)
	}

	schedulerModule, err := scheduler.New(appCtx.MongoDB, appCtx.Redis, scheduler.Jobs{
		ImportCampaigns: timersModule.RunImport,
		NotifyTimers:    timersModule.RunNotify,
		RefreshUniverse: universeModule.RunRefresh,
	}, permissionManager)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler module: %v", err)
	}

	modules := []module.Module{universeModule, standingsModule, timersModule, schedulerModule}

	// Service health endpoint, with per-module health routes alongside
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"timers","esi_error_limit_remain":%d}`,
			esiClient.ErrorLimitRemain())
	})
	for _, mod := range modules {
		mod.RegisterHealthRoute(r)
	}

	// Unified Huma API
	humaConfig := huma.DefaultConfig("Alliance Timers API", "1.0.0")
	humaConfig.Info.Description = "Structure timer tracking for alliance operations"
	api := humachi.New(r, humaConfig)

	for _, mod := range modules {
		mod.RegisterRoutes(api)
	}

	// Start background services for all modules
	for _, mod := range modules {
		go mod.StartBackgroundTasks(ctx)
	}

	port := app.GetPort("8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting timers API server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Received shutdown signal, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	for _, mod := range modules {
		mod.Stop()
	}

	slog.Info("Timers shutdown completed")
}
