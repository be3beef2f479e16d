// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package config

import "time"

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables (in that order of precedence).
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	db, err := database.New(&cfg.Database)
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	History   HistoryConfig   `koanf:"history"`
}

// DatabaseConfig holds DuckDB settings for the wardrobe and history store.
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`                  // 0 = use NumCPU
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"` // DuckDB default is true
	SeedDemoData           bool   `koanf:"seed_demo_data"`           // Insert demo users and wardrobe on startup
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds the HTTP-facing security settings.
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// RecommendConfig controls outfit generation.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_LIMIT: items returned when a request has no limit (default: 5)
//   - RECOMMEND_MAX_LIMIT: upper clamp for the request limit, at most 20 (default: 20)
//   - RECOMMEND_ENGINE_TIMEOUT: deadline for one scoring call (default: 5s)
//   - RECOMMEND_SEED: seed for tie-breaking randomness (default: 42)
//   - BREAKER_ENABLED: wrap the engine in a circuit breaker (default: true)
//   - BREAKER_TIMEOUT: how long the breaker stays open (default: 1m)
type RecommendConfig struct {
	DefaultLimit    int           `koanf:"default_limit"`
	MaxLimit        int           `koanf:"max_limit"`
	EngineTimeout   time.Duration `koanf:"engine_timeout"`
	Seed            int64         `koanf:"seed"`
	MaxCombinations int           `koanf:"max_combinations"`
	TopOutfits      int           `koanf:"top_outfits"`
	Breaker         BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds circuit breaker settings for the scoring engine.
type BreakerConfig struct {
	Enabled         bool          `koanf:"enabled"`
	MaxRequests     uint32        `koanf:"max_requests"` // probes allowed while half-open
	Interval        time.Duration `koanf:"interval"`     // closed-state counter reset period
	Timeout         time.Duration `koanf:"timeout"`      // open-state duration
	MinRequests     uint32        `koanf:"min_requests"`
	FailureRatio    float64       `koanf:"failure_ratio"`
	ConsecutiveTrip uint32        `koanf:"consecutive_trip"`
}

// HistoryConfig selects and tunes the history persistence backend.
//
// Environment Variables:
//   - HISTORY_BACKEND: duckdb or badger (default: duckdb)
//   - HISTORY_BADGER_PATH: BadgerDB directory when backend=badger
//   - HISTORY_DEFAULT_LIMIT: records returned by the HTTP list endpoint (default: 20)
//   - HISTORY_MAX_LIMIT: upper clamp for load (default: 100)
//   - HISTORY_MAINTENANCE_INTERVAL: checkpoint/GC period, 0 disables (default: 10m)
type HistoryConfig struct {
	Backend             string        `koanf:"backend"`
	BadgerPath          string        `koanf:"badger_path"`
	DefaultLimit        int           `koanf:"default_limit"`
	MaxLimit            int           `koanf:"max_limit"`
	MaintenanceInterval time.Duration `koanf:"maintenance_interval"`
}

// Load loads configuration using Koanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
