// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package database is the DuckDB data layer for Outfitter.
//
// # Overview
//
// DB owns a single database/sql pool over github.com/duckdb/duckdb-go/v2 and
// serves two roles:
//
//   - Profile/wardrobe accessor: UserExists, GetWardrobe, GetUserProfile
//     (recommend.ProfileAccessor)
//   - History repository: InsertHistory, ListHistory, UpdateHistoryFeedback
//     (history.Repository)
//
// Write helpers (CreateUser, UpsertUserProfile, AddClothingItem) back demo
// seeding and tests.
//
// # Files
//
//   - database.go: lifecycle (open, initialize, close, ping)
//   - schema.go: tables, sequences, and indexes
//   - migrations.go: versioned migrations tracked in schema_migrations
//   - wardrobe.go: users, profiles, and clothing items
//   - history.go: recommendation history and feedback
//   - seed.go: demo data
//
// # Transactions
//
// InsertHistory writes the history row and its item rows in one transaction.
// A failure at any step rolls back everything, so ListHistory never sees a
// record without its items.
//
// # Metrics
//
// Every data access call records db_query_duration_seconds and, on failure,
// db_query_errors_total.
//
// # Testing
//
// Tests use ":memory:" databases created through setupTestDB, which holds a
// package-wide semaphore for the whole test so only one DuckDB connection is
// active at a time.
package database
