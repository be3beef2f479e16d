// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/metrics"
)

// Maintainer is one unit of periodic storage upkeep.
type Maintainer interface {
	Maintain(ctx context.Context) error
}

// MaintenanceFunc adapts a function such as (*database.DB).Checkpoint or
// (*history.BadgerRepository).CollectGarbage to Maintainer.
type MaintenanceFunc func(ctx context.Context) error

// Maintain calls f(ctx).
func (f MaintenanceFunc) Maintain(ctx context.Context) error {
	return f(ctx)
}

// MaintenanceServiceConfig holds the schedule for a MaintenanceService.
type MaintenanceServiceConfig struct {
	// Task names the work in logs and the storage_maintenance_* metrics.
	Task string

	// Interval between runs. Default: 10m
	Interval time.Duration

	// RunTimeout bounds a single run. Default: 5m
	RunTimeout time.Duration

	// RunOnStartup runs once immediately before the first tick.
	RunOnStartup bool
}

// MaintenanceService runs a Maintainer on a fixed schedule under suture.
// A failed run is logged and retried on the next tick; it never makes Serve
// return, so the supervisor only restarts the service on a panic.
type MaintenanceService struct {
	task   Maintainer
	config MaintenanceServiceConfig
	logger zerolog.Logger
}

// NewMaintenanceService creates a maintenance service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(task Maintainer, cfg MaintenanceServiceConfig, logger zerolog.Logger) *MaintenanceService {
	if cfg.Task == "" {
		cfg.Task = "maintenance"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}
	return &MaintenanceService{
		task:   task,
		config: cfg,
		logger: logger.With().Str("service", "maintenance").Str("task", cfg.Task).Logger(),
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("run_on_startup", s.config.RunOnStartup).
		Msg("maintenance service starting")

	if s.config.RunOnStartup {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("maintenance service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *MaintenanceService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	start := time.Now()
	err := s.task.Maintain(runCtx)
	duration := time.Since(start)
	metrics.RecordMaintenance(s.config.Task, duration, err)

	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("maintenance run failed")
		}
		return
	}
	s.logger.Debug().Dur("duration", duration).Msg("maintenance run complete")
}

// String returns the service name for suture's logs.
func (s *MaintenanceService) String() string {
	return "maintenance:" + s.config.Task
}
