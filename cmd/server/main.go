// Tokirank - Event Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tokirank

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/tomtom215/tokirank/internal/api"
	"github.com/tomtom215/tokirank/internal/config"
	"github.com/tomtom215/tokirank/internal/database"
	"github.com/tomtom215/tokirank/internal/logging"
	"github.com/tomtom215/tokirank/internal/middleware"
	"github.com/tomtom215/tokirank/internal/supervisor"
	"github.com/tomtom215/tokirank/internal/supervisor/services"
	"github.com/tomtom215/tokirank/internal/telemetry"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
//
//nolint:gocyclo // sequential startup steps
func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("version", api.Version).
		Str("db_driver", cfg.Database.Driver).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Tokirank")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize telemetry")
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logging.Warn().Err(err).Msg("Telemetry shutdown error")
		}
	}()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize database")
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if err := prepareStore(ctx, db, &cfg.Database); err != nil {
		logging.Error().Err(err).Msg("Failed to prepare database")
		return 1
	}

	registry, err := initRegistry(&cfg.Recommend, db, tel.TracerProvider(), logging.WithComponent("recommend"))
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize recommendation registry")
		return 1
	}

	monitor := services.NewStoreMonitor(db, services.StoreMonitorConfig{
		Interval: cfg.Database.HealthCheckInterval,
	}, logging.WithComponent("supervisor"))

	handler := api.NewHandler(api.Dependencies{
		Registry:       registry,
		Store:          db,
		Recommend:      cfg.Recommend,
		Monitor:        monitor,
		RequestTimeout: cfg.Server.Timeout,
		TracingEnabled: tel.Enabled(),
	})

	var tp trace.TracerProvider
	if tel.Enabled() {
		tp = tel.TracerProvider()
	}
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, middleware.NewSecurity(cfg.Security), tp),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddDataService(monitor)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Tokirank stopped")
	return 0
}

// prepareStore creates the schema and loads the demo graph on embedded
// drivers when configured.
func prepareStore(ctx context.Context, db *database.DB, cfg *config.DatabaseConfig) error {
	if !cfg.IsEmbedded() {
		return nil
	}
	if cfg.CreateSchema {
		if err := db.CreateSchema(ctx); err != nil {
			return err
		}
	}
	if cfg.SeedMockData {
		logging.Info().Msg("Seeding mock data (SEED_MOCK_DATA=true)")
		if err := db.SeedMockData(ctx); err != nil {
			return err
		}
	}
	return nil
}
