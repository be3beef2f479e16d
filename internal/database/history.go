// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/models"
)

// InsertHistory persists rec and its ordered item references in a single
// transaction. On success rec.ID and rec.CreatedAt are set. Any failure rolls
// back both the record and its items.
func (db *DB) InsertHistory(ctx context.Context, rec *models.HistoryRecord) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "recommendation_history", start, err) }(time.Now())

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Int64("user_id", rec.UserID).
					Msg("Transaction rollback failed")
			}
		}
	}()

	// TIMESTAMP keeps microseconds; truncate so the returned value matches reads.
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO recommendation_history
			(user_id, occasion, weather, season, location, rationale, confidence, recommendation_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		rec.UserID, rec.Context.Occasion, rec.Context.Weather, rec.Context.Season,
		nullString(rec.Context.Location), rec.Rationale, rec.Confidence, rec.RecommendationType, createdAt).
		Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}

	if err = db.injectedHistoryFault(); err != nil {
		return fmt.Errorf("failed to insert history items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO recommendation_items (history_id, position, item_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for pos, itemID := range rec.ItemIDs {
		if _, err = stmt.ExecContext(ctx, id, pos, itemID); err != nil {
			return fmt.Errorf("failed to insert history item %d: %w", itemID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	rec.ID = id
	rec.CreatedAt = createdAt
	return nil
}

// ListHistory returns up to limit of the user's history records, newest first.
// Records saved in the same instant are ordered by descending ID.
func (db *DB) ListHistory(ctx context.Context, userID int64, limit int) (records []models.HistoryRecord, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "recommendation_history", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, `
		SELECT h.id, h.user_id, h.occasion, h.weather, h.season, h.location,
		       h.rationale, h.confidence, h.recommendation_type,
		       h.user_feedback, h.feedback_reason, h.created_at,
		       COALESCE(string_agg(CAST(i.item_id AS VARCHAR), ',' ORDER BY i.position), '')
		FROM recommendation_history h
		LEFT JOIN recommendation_items i ON i.history_id = h.id
		WHERE h.user_id = ?
		GROUP BY h.id, h.user_id, h.occasion, h.weather, h.season, h.location,
		         h.rationale, h.confidence, h.recommendation_type,
		         h.user_feedback, h.feedback_reason, h.created_at
		ORDER BY h.created_at DESC, h.id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for user %d: %w", userID, err)
	}
	defer rows.Close()

	records = []models.HistoryRecord{}
	for rows.Next() {
		var rec models.HistoryRecord
		var location, feedback, reason sql.NullString
		var itemList string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Context.Occasion, &rec.Context.Weather,
			&rec.Context.Season, &location, &rec.Rationale, &rec.Confidence, &rec.RecommendationType,
			&feedback, &reason, &rec.CreatedAt, &itemList); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		rec.Context.Location = location.String
		rec.FeedbackReason = reason.String
		if feedback.Valid {
			fb := models.Feedback(feedback.String)
			rec.UserFeedback = &fb
		}
		if rec.ItemIDs, err = parseIDList(itemList); err != nil {
			return nil, fmt.Errorf("history record %d: %w", rec.ID, err)
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return records, nil
}

// UpdateHistoryFeedback records the user's feedback on one of their history
// records. It returns ErrRecordNotFound when the record does not exist or
// belongs to another user.
func (db *DB) UpdateHistoryFeedback(ctx context.Context, userID, historyID int64, feedback models.Feedback, reason string) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "recommendation_history", start, err) }(time.Now())

	res, err := db.conn.ExecContext(ctx, `
		UPDATE recommendation_history
		SET user_feedback = ?, feedback_reason = ?, feedback_at = ?
		WHERE id = ? AND user_id = ?`,
		string(feedback), nullString(reason), time.Now().UTC(), historyID, userID)
	if err != nil {
		return fmt.Errorf("failed to update feedback for record %d: %w", historyID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %d for user %d: %w", historyID, userID, ErrRecordNotFound)
	}
	return nil
}

func parseIDList(s string) ([]int64, error) {
	ids := []int64{}
	if s == "" {
		return ids, nil
	}
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed item list %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
