// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
schema.go - Database Schema Management

Tables:
  - users: wardrobe owners
  - user_profiles: style preferences, list columns stored as JSON text
  - clothing_items: wardrobe pieces
  - recommendation_history: one row per saved recommendation
  - recommendation_items: ordered item references of a history row

IDs come from sequences so that history IDs are strictly increasing, which
gives Load a stable tiebreak when two records share a created_at.

No foreign keys are declared. DuckDB rewrites some updates as delete+insert,
which trips foreign key checks on referenced rows; integrity is enforced in
the write paths instead.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS clothing_items_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS recommendation_history_id_seq START 1`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			username TEXT NOT NULL,
			email TEXT,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id BIGINT PRIMARY KEY,
			gender TEXT,
			age INTEGER,
			preferred_colors TEXT NOT NULL DEFAULT '[]',
			preferred_styles TEXT NOT NULL DEFAULT '[]',
			occasions TEXT NOT NULL DEFAULT '[]',
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS clothing_items (
			id BIGINT PRIMARY KEY DEFAULT nextval('clothing_items_id_seq'),
			user_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			color TEXT,
			style TEXT,
			season TEXT,
			occasion TEXT,
			material TEXT,
			pattern TEXT,
			image_url TEXT,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS recommendation_history (
			id BIGINT PRIMARY KEY DEFAULT nextval('recommendation_history_id_seq'),
			user_id BIGINT NOT NULL,
			occasion TEXT NOT NULL,
			weather TEXT NOT NULL,
			season TEXT NOT NULL,
			location TEXT,
			rationale TEXT NOT NULL,
			confidence DOUBLE NOT NULL,
			recommendation_type TEXT NOT NULL,
			user_feedback TEXT,
			feedback_reason TEXT,
			feedback_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS recommendation_items (
			history_id BIGINT NOT NULL,
			position INTEGER NOT NULL,
			item_id BIGINT NOT NULL,
			PRIMARY KEY (history_id, position)
		)`,
	}
}

// createIndexes creates secondary indexes for the per-user lookups.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_clothing_items_user ON clothing_items(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user_created ON recommendation_history(user_id, created_at)`,
	}
	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}
