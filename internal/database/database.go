// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/logging"
)

// Sentinel errors returned by the data access methods.
var (
	// ErrUserNotFound is returned by writes that reference an unknown user.
	ErrUserNotFound = errors.New("user not found")

	// ErrRecordNotFound is returned when a history record does not exist for the user.
	ErrRecordNotFound = errors.New("history record not found")

	// ErrItemNotFound is returned when a clothing item does not exist for the user.
	ErrItemNotFound = errors.New("clothing item not found")
)

// DB wraps the DuckDB connection and provides data access methods.
//
// DB implements recommend.ProfileAccessor and history.Repository.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// historyFault, when set, is called between the record insert and the
	// item inserts of InsertHistory. Tests use it to force a mid-transaction
	// failure.
	historyFault   func() error
	historyFaultMu sync.RWMutex
}

// New creates a new database connection and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	// Extensions are never auto-installed so startup cannot hang on the network.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, maxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.enableProfiling(); err != nil {
		logging.Warn().Err(err).Msg("Query profiling not enabled")
	}

	return db, nil
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close checkpoints the WAL and closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}
	cancel()

	return db.conn.Close()
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// initialize creates tables, applies migrations, and builds indexes.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}

	if err := db.runVersionedMigrations(); err != nil {
		return err
	}

	if err := db.createIndexes(); err != nil {
		return err
	}

	checkpointCtx, checkpointCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer checkpointCancel()
	if err := db.Checkpoint(checkpointCtx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
	}

	return nil
}

// SetHistoryFaultForTesting installs a hook that runs inside the
// InsertHistory transaction after the record row is written. Returning an
// error aborts the transaction. Pass nil to clear it.
func (db *DB) SetHistoryFaultForTesting(fn func() error) {
	db.historyFaultMu.Lock()
	defer db.historyFaultMu.Unlock()
	db.historyFault = fn
}

func (db *DB) injectedHistoryFault() error {
	db.historyFaultMu.RLock()
	fn := db.historyFault
	db.historyFaultMu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn()
}
