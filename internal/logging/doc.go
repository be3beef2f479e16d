// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package logging provides centralized zerolog-based structured logging for Outfitter.
//
// A single global logger is configured once at startup and shared by every
// package. JSON output is the default; console output is available for local
// development.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("port", 8080).Msg("Server starting")
//	logging.Error().Err(err).Msg("History save failed")
//
//	// Request-scoped logging picks up correlation and request IDs.
//	logging.Ctx(ctx).Info().Int64("user_id", id).Msg("Outfit generated")
//
// # Configuration
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Suture Integration
//
// The supervisor tree logs through sutureslog, which needs an *slog.Logger.
// NewSlogLogger returns one backed by the global zerolog logger, tagged
// with a component field.
package logging
