// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/outfitter/internal/api"
	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/database"
	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/supervisor"
	"github.com/tomtom215/outfitter/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Caller:  cfg.Logging.Caller,
		Service: "outfitter",
		Version: version,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Outfitter stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("history_backend", cfg.History.Backend).
		Msg("Starting Outfitter with supervisor tree")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedDemoData {
		logging.Info().Msg("Demo data seeding enabled (SEED_DEMO_DATA=true)")
		if err := db.SeedDemoData(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	hist, err := initHistory(&cfg.History, db)
	if err != nil {
		return fmt.Errorf("initialize history backend: %w", err)
	}
	defer func() {
		if err := hist.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing history backend")
		}
	}()

	recommender, err := initRecommend(&cfg.Recommend, db, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	if cfg.HasWildcardCORS() && cfg.IsProduction() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*) in production; set explicit origins")
	}

	pingers := []api.Pinger{db}
	if hist.Pinger != nil {
		pingers = append(pingers, hist.Pinger)
	}
	handler := api.NewHandler(recommender, hist.Store, db, cfg, pingers...)

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	router := api.NewRouter(handler, api.NewChiMiddleware(mwConfig))

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	// sutureslog needs slog; the adapter forwards into zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if interval := cfg.History.MaintenanceInterval; interval > 0 {
		tree.AddStorageService(services.NewMaintenanceService(
			services.MaintenanceFunc(db.Checkpoint),
			services.MaintenanceServiceConfig{Task: "duckdb-checkpoint", Interval: interval},
			logging.WithComponent("maintenance"),
		))
		if hist.Maintenance != nil {
			tree.AddStorageService(services.NewMaintenanceService(
				hist.Maintenance,
				services.MaintenanceServiceConfig{Task: "badger-gc", Interval: interval},
				logging.WithComponent("maintenance"),
			))
		}
	} else {
		logging.Info().Msg("Storage maintenance disabled (HISTORY_MAINTENANCE_INTERVAL=0)")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	if ctx.Err() != nil {
		logging.Info().Msg("Shutdown signal received")
	}
	return nil
}
