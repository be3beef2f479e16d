// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/metrics"
)

// enableProfiling enables DuckDB query profiling when ENABLE_QUERY_PROFILING=true.
func (db *DB) enableProfiling() error {
	if os.Getenv("ENABLE_QUERY_PROFILING") != "true" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "PRAGMA enable_profiling"); err != nil {
		return fmt.Errorf("failed to enable profiling: %w", err)
	}
	if _, err := db.conn.ExecContext(ctx, "PRAGMA profiling_mode = 'detailed'"); err != nil {
		return fmt.Errorf("failed to set profiling mode: %w", err)
	}

	logging.Info().Msg("Query profiling enabled (detailed mode)")
	return nil
}

// ensureContext adds a 30-second timeout when ctx has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}
	return ctx, func() {}
}

// observe records query duration and errors for one data access call.
func observe(operation, table string, start time.Time, err error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	if err != nil {
		logging.Debug().
			Err(err).
			Str("operation", operation).
			Str("table", table).
			Str("error_class", classifyError(err)).
			Msg("Database operation failed")
	}
}

// Checkpoint forces a WAL checkpoint.
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// GetDatabasePath returns the path to the database file.
func (db *DB) GetDatabasePath() string {
	return db.cfg.Path
}

// RecordCounts holds row counts of the main tables.
type RecordCounts struct {
	Users         int64 `json:"users"`
	ClothingItems int64 `json:"clothing_items"`
	History       int64 `json:"recommendation_history"`
}

// GetRecordCounts returns the count of records in the main tables.
func (db *DB) GetRecordCounts(ctx context.Context) (RecordCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var counts RecordCounts
	err := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM clothing_items),
		(SELECT COUNT(*) FROM recommendation_history)`).
		Scan(&counts.Users, &counts.ClothingItems, &counts.History)
	if err != nil {
		return RecordCounts{}, fmt.Errorf("failed to count records: %w", err)
	}
	return counts, nil
}
