// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, disabled.
	// Unknown values fall back to info.
	Level string

	// Format is json or console.
	Format string

	// Caller adds file:line to every line.
	Caller bool

	// Service and Version, when set, are stamped on every line so log
	// aggregation can split instances after a rollout.
	Service string
	Version string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns JSON at info level to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

var global atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"
	Init(DefaultConfig())
}

// Init replaces the global logger. Safe to call more than once.
//
//nolint:gocritic // Config is small and read once
func Init(cfg Config) {
	l := build(cfg)
	global.Store(&l)
}

//nolint:gocritic // Config is small and read once
func build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	lc := zerolog.New(out).With().Timestamp()
	if cfg.Service != "" {
		lc = lc.Str("service", cfg.Service)
	}
	if cfg.Version != "" {
		lc = lc.Str("version", cfg.Version)
	}
	if cfg.Caller {
		lc = lc.Caller()
	}
	return lc.Logger()
}

func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	if level == "disabled" {
		return zerolog.Disabled
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return parsed
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return *global.Load()
}

// With starts a child logger from the global one.
//
//	l := logging.With().Str("backend", "badger").Logger()
func With() zerolog.Context {
	return global.Load().With()
}

// Debug starts a debug event on the global logger.
func Debug() *zerolog.Event { return global.Load().Debug() }

// Info starts an info event on the global logger.
func Info() *zerolog.Event { return global.Load().Info() }

// Warn starts a warn event on the global logger.
func Warn() *zerolog.Event { return global.Load().Warn() }

// Error starts an error event on the global logger.
func Error() *zerolog.Event { return global.Load().Error() }

// Fatal starts a fatal event. The process exits after Msg.
func Fatal() *zerolog.Event { return global.Load().Fatal() }

// NewTestLogger writes JSON to w, for asserting on log output in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
