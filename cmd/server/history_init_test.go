// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/history"
)

func TestInitHistory(t *testing.T) {
	db := newSeededDB(t)

	t.Run("duckdb", func(t *testing.T) {
		hist, err := initHistory(&config.HistoryConfig{Backend: config.HistoryBackendDuckDB}, db)
		if err != nil {
			t.Fatalf("initHistory() error = %v", err)
		}
		defer func() { _ = hist.Close() }()

		if hist.Store.Backend() != history.BackendDuckDB {
			t.Errorf("Backend() = %q, want duckdb", hist.Store.Backend())
		}
		if hist.Pinger != nil || hist.Maintenance != nil {
			t.Error("duckdb history should not add a pinger or maintenance task")
		}
	})

	t.Run("badger", func(t *testing.T) {
		cfg := &config.HistoryConfig{
			Backend:    config.HistoryBackendBadger,
			BadgerPath: filepath.Join(t.TempDir(), "history"),
		}
		hist, err := initHistory(cfg, db)
		if err != nil {
			t.Fatalf("initHistory() error = %v", err)
		}
		defer func() { _ = hist.Close() }()

		if hist.Store.Backend() != history.BackendBadger {
			t.Errorf("Backend() = %q, want badger", hist.Store.Backend())
		}
		if hist.Pinger == nil {
			t.Fatal("badger history should expose a pinger")
		}
		if err := hist.Pinger.Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
		if hist.Maintenance == nil {
			t.Fatal("badger history should expose a maintenance task")
		}
		if err := hist.Maintenance.Maintain(context.Background()); err != nil {
			t.Errorf("Maintain() error = %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := initHistory(&config.HistoryConfig{Backend: "redis"}, db); err == nil {
			t.Error("initHistory(redis) should fail")
		}
	})
}
