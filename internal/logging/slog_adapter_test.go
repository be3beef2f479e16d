// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newSlogHandler(NewTestLogger(&buf))).
		WithGroup("supervisor").
		With("service", "maintenance:badger-gc")

	logger.Warn("service restarted",
		"attempt", 2,
		"backoff", time.Second,
		"err", errors.New("value log locked"),
		slog.Group("policy", "threshold", 5))

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"supervisor.service":"maintenance:badger-gc"`,
		`"supervisor.attempt":2`,
		`"supervisor.err":"value log locked"`,
		`"supervisor.policy.threshold":5`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	handler := newSlogHandler(zerolog.Nop().Level(zerolog.WarnLevel))
	ctx := context.Background()

	if handler.Enabled(ctx, slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !handler.Enabled(ctx, slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestNewSlogLogger_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	NewSlogLogger("supervisor").Info("tree started")

	if !strings.Contains(buf.String(), `"component":"supervisor"`) {
		t.Errorf("component missing: %s", buf.String())
	}
}

func TestZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := zerologLevel(tt.in); got != tt.want {
			t.Errorf("zerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
