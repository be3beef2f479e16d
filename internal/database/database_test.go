// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/models"
)

// testDBSemaphore limits concurrent database use to one test at a time.
// Concurrent DuckDB CGO calls from many parallel tests can hang under CI
// resource pressure, so the slot is held until the test completes.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates an in-memory database with a 120-second creation timeout.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := New(cfg)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

// seedUser creates a user with the given wardrobe and returns its ID.
func seedUser(t *testing.T, db *DB, name string, items ...models.ClothingItem) int64 {
	t.Helper()
	ctx := context.Background()

	user, err := db.CreateUser(ctx, name, "")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	for i := range items {
		items[i].UserID = user.ID
		if err := db.AddClothingItem(ctx, &items[i]); err != nil {
			t.Fatalf("AddClothingItem() error = %v", err)
		}
	}
	return user.ID
}

func TestNew_FileDatabase(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	path := filepath.Join(t.TempDir(), "nested", "outfitter.duckdb")
	db, err := New(&config.DatabaseConfig{Path: path, MaxMemory: "256MB"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if db.GetDatabasePath() != path {
		t.Errorf("GetDatabasePath() = %q, want %q", db.GetDatabasePath(), path)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening runs schema creation and migrations again without error.
	db, err = New(&config.DatabaseConfig{Path: path, MaxMemory: "256MB"})
	if err != nil {
		t.Fatalf("reopen New() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestSchemaVersion(t *testing.T) {
	db := setupTestDB(t)

	v, err := db.GetCurrentSchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentSchemaVersion() error = %v", err)
	}
	if v != len(migrations()) {
		t.Errorf("schema version = %d, want %d", v, len(migrations()))
	}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("sql: database is closed"), "connection"},
		{errors.New("driver: bad connection"), "connection"},
		{errors.New("TransactionContext Error: Transaction conflict"), "conflict"},
		{errors.New("Binder Error: column not found"), "query"},
	}
	for _, tt := range tests {
		if got := classifyError(tt.err); got != tt.want {
			t.Errorf("classifyError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
