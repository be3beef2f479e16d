// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"fmt"

	"github.com/tomtom215/outfitter/internal/api"
	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/database"
	"github.com/tomtom215/outfitter/internal/history"
	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/supervisor/services"
)

// HistoryComponents is the configured history backend.
type HistoryComponents struct {
	Store *history.Store

	// Pinger reports backend readiness. Nil when history shares the
	// DuckDB connection, which is pinged on its own.
	Pinger api.Pinger

	// Maintenance runs backend specific upkeep. Nil for DuckDB.
	Maintenance services.Maintainer

	close func() error
}

// Close releases the backend if it owns resources beyond the DuckDB connection.
func (h *HistoryComponents) Close() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}

// initHistory opens the history backend selected by HISTORY_BACKEND.
func initHistory(cfg *config.HistoryConfig, db *database.DB) (*HistoryComponents, error) {
	switch cfg.Backend {
	case config.HistoryBackendBadger:
		repo, err := history.OpenBadgerRepository(cfg.BadgerPath, false)
		if err != nil {
			return nil, err
		}
		logging.Info().Str("path", cfg.BadgerPath).Msg("History backend: BadgerDB")
		return &HistoryComponents{
			Store:       history.NewStore(repo, history.BackendBadger, cfg),
			Pinger:      repo,
			Maintenance: services.MaintenanceFunc(repo.CollectGarbage),
			close:       repo.Close,
		}, nil

	case config.HistoryBackendDuckDB, "":
		logging.Info().Msg("History backend: DuckDB")
		return &HistoryComponents{
			Store: history.NewStore(db, history.BackendDuckDB, cfg),
		}, nil

	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
