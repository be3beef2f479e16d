// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "metrics_test", "disk full"))

	RecordDBQuery("INSERT", "metrics_test", 5*time.Millisecond, nil)
	RecordDBQuery("INSERT", "metrics_test", 5*time.Millisecond, errors.New("disk full"))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "metrics_test", "disk full"))
	if after-before != 1 {
		t.Errorf("error counter delta = %v, want 1", after-before)
	}

	long := errors.New(strings.Repeat("e", 80))
	RecordDBQuery("SELECT", "metrics_test", time.Millisecond, long)
	truncated := strings.Repeat("e", 50)
	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "metrics_test", truncated)); got < 1 {
		t.Errorf("expected truncated error label to be recorded, got %v", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	success := RecommendationsTotal.WithLabelValues("success", "")
	failure := RecommendationsTotal.WithLabelValues("error", "WARDROBE_EMPTY")
	s0, f0 := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	RecordRecommendation("success", "", 4)
	RecordRecommendation("error", "WARDROBE_EMPTY", 0)

	if d := testutil.ToFloat64(success) - s0; d != 1 {
		t.Errorf("success delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(failure) - f0; d != 1 {
		t.Errorf("failure delta = %v, want 1", d)
	}
}

func TestRecordHistorySaveAndLoad(t *testing.T) {
	ok := HistorySavesTotal.WithLabelValues("metrics_test", "success")
	failed := HistorySavesTotal.WithLabelValues("metrics_test", "failure")
	ok0, failed0 := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordHistorySave("metrics_test", true)
	RecordHistorySave("metrics_test", false)

	if d := testutil.ToFloat64(ok) - ok0; d != 1 {
		t.Errorf("success delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(failed) - failed0; d != 1 {
		t.Errorf("failure delta = %v, want 1", d)
	}

	tests := []struct {
		count int
		err   error
		label string
	}{
		{3, nil, "ok"},
		{0, nil, "empty"},
		{2, errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		c := HistoryLoadsTotal.WithLabelValues("metrics_test", tt.label)
		before := testutil.ToFloat64(c)
		RecordHistoryLoad("metrics_test", tt.count, tt.err)
		if d := testutil.ToFloat64(c) - before; d != 1 {
			t.Errorf("load label %q delta = %v, want 1", tt.label, d)
		}
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordMaintenance(t *testing.T) {
	ok := MaintenanceRuns.WithLabelValues("metrics_test", "success")
	failed := MaintenanceRuns.WithLabelValues("metrics_test", "error")
	ok0, failed0 := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordMaintenance("metrics_test", time.Millisecond, nil)
	RecordMaintenance("metrics_test", time.Millisecond, errors.New("locked"))

	if d := testutil.ToFloat64(ok) - ok0; d != 1 {
		t.Errorf("success delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(failed) - failed0; d != 1 {
		t.Errorf("error delta = %v, want 1", d)
	}
}
