// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/outfitter/internal/models"
)

func newRecord(userID int64, items ...int64) *models.HistoryRecord {
	return &models.HistoryRecord{
		UserID:             userID,
		ItemIDs:            items,
		Context:            models.HistoryContext{Occasion: "business", Weather: "sunny", Season: "autumn"},
		Rationale:          "suits business",
		Confidence:         0.82,
		RecommendationType: models.RecommendationTypeOutfit,
	}
}

func TestInsertAndListHistory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "erin")

	first := newRecord(userID, 3, 1, 2)
	first.Context.Location = "Berlin"
	if err := db.InsertHistory(ctx, first); err != nil {
		t.Fatalf("InsertHistory() error = %v", err)
	}
	if first.ID <= 0 || first.CreatedAt.IsZero() {
		t.Fatalf("InsertHistory() did not assign id/created_at: %+v", first)
	}

	second := newRecord(userID, 5)
	if err := db.InsertHistory(ctx, second); err != nil {
		t.Fatalf("InsertHistory() error = %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("ids not increasing: %d then %d", first.ID, second.ID)
	}

	got, err := db.ListHistory(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListHistory() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("order = [%d %d], want newest first", got[0].ID, got[1].ID)
	}
	if !reflect.DeepEqual(got[1].ItemIDs, []int64{3, 1, 2}) {
		t.Errorf("ItemIDs = %v, want insertion order [3 1 2]", got[1].ItemIDs)
	}
	if got[1].Context.Location != "Berlin" || got[0].Context.Location != "" {
		t.Errorf("locations = %q, %q", got[1].Context.Location, got[0].Context.Location)
	}
	if got[1].UserFeedback != nil {
		t.Errorf("UserFeedback = %v, want nil", *got[1].UserFeedback)
	}

	limited, err := db.ListHistory(ctx, userID, 1)
	if err != nil || len(limited) != 1 || limited[0].ID != second.ID {
		t.Errorf("ListHistory(limit 1) = %+v, %v", limited, err)
	}

	other, err := db.ListHistory(ctx, userID+100, 10)
	if err != nil || len(other) != 0 {
		t.Errorf("ListHistory(other user) = %+v, %v", other, err)
	}
}

func TestInsertHistory_CreatedAtMatchesStoredValue(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "fen")

	rec := newRecord(userID)
	if err := db.InsertHistory(ctx, rec); err != nil {
		t.Fatalf("InsertHistory() error = %v", err)
	}
	if rec.CreatedAt.Nanosecond()%1000 != 0 {
		t.Errorf("CreatedAt = %v, want microsecond precision", rec.CreatedAt)
	}

	got, err := db.ListHistory(ctx, userID, 1)
	if err != nil {
		t.Fatalf("ListHistory() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if !got[0].CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("stored created_at = %v, returned %v", got[0].CreatedAt, rec.CreatedAt)
	}
	if got[0].ItemIDs == nil || len(got[0].ItemIDs) != 0 {
		t.Errorf("ItemIDs = %#v, want empty non-nil", got[0].ItemIDs)
	}
}

func TestInsertHistory_FaultRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "frank")

	db.SetHistoryFaultForTesting(func() error { return errors.New("disk full") })
	err := db.InsertHistory(ctx, newRecord(userID, 1, 2))
	db.SetHistoryFaultForTesting(nil)
	if err == nil {
		t.Fatal("InsertHistory() error = nil, want injected fault")
	}

	got, err := db.ListHistory(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListHistory() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("partial record visible after rollback: %+v", got)
	}

	var items int
	if err := db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM recommendation_items`).Scan(&items); err != nil {
		t.Fatal(err)
	}
	if items != 0 {
		t.Errorf("recommendation_items rows = %d, want 0", items)
	}
}

func TestUpdateHistoryFeedback(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "gina")

	rec := newRecord(userID, 1)
	if err := db.InsertHistory(ctx, rec); err != nil {
		t.Fatalf("InsertHistory() error = %v", err)
	}

	if err := db.UpdateHistoryFeedback(ctx, userID, rec.ID, models.FeedbackLiked, "great colors"); err != nil {
		t.Fatalf("UpdateHistoryFeedback() error = %v", err)
	}
	got, err := db.ListHistory(ctx, userID, 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("ListHistory() = %+v, %v", got, err)
	}
	if got[0].UserFeedback == nil || *got[0].UserFeedback != models.FeedbackLiked || got[0].FeedbackReason != "great colors" {
		t.Errorf("feedback = %v %q", got[0].UserFeedback, got[0].FeedbackReason)
	}

	err = db.UpdateHistoryFeedback(ctx, userID+1, rec.ID, models.FeedbackDisliked, "")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("other user's record: error = %v, want ErrRecordNotFound", err)
	}
	err = db.UpdateHistoryFeedback(ctx, userID, rec.ID+100, models.FeedbackDisliked, "")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("unknown record: error = %v, want ErrRecordNotFound", err)
	}
}

func TestParseIDList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    []int64
		wantErr bool
	}{
		{"", []int64{}, false},
		{"7", []int64{7}, false},
		{"3,1,2", []int64{3, 1, 2}, false},
		{"1,,2", nil, true},
		{"a", nil, true},
	}
	for _, tt := range tests {
		got, err := parseIDList(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIDList(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseIDList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
