// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// recommendLimitCeiling matches recommend.MaxLimit.
const recommendLimitCeiling = 20

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxLimit < 1 || r.MaxLimit > recommendLimitCeiling {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be between 1 and %d", recommendLimitCeiling)
	}
	if r.DefaultLimit < 1 || r.DefaultLimit > r.MaxLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be between 1 and RECOMMEND_MAX_LIMIT (%d)", r.MaxLimit)
	}
	if r.EngineTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_ENGINE_TIMEOUT must be positive")
	}
	if r.MaxCombinations < 1 {
		return fmt.Errorf("RECOMMEND_MAX_COMBINATIONS must be at least 1")
	}
	if r.TopOutfits < 1 {
		return fmt.Errorf("RECOMMEND_TOP_OUTFITS must be at least 1")
	}
	if r.Breaker.Enabled {
		if r.Breaker.Timeout <= 0 {
			return fmt.Errorf("BREAKER_TIMEOUT must be positive")
		}
		if r.Breaker.FailureRatio <= 0 || r.Breaker.FailureRatio > 1 {
			return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1]")
		}
	}
	return nil
}

func (c *Config) validateHistory() error {
	switch c.History.Backend {
	case HistoryBackendDuckDB:
	case HistoryBackendBadger:
		if strings.TrimSpace(c.History.BadgerPath) == "" {
			return fmt.Errorf("HISTORY_BADGER_PATH is required when HISTORY_BACKEND=badger")
		}
	default:
		return fmt.Errorf("HISTORY_BACKEND must be one of: duckdb, badger")
	}
	if c.History.MaxLimit < 1 {
		return fmt.Errorf("HISTORY_MAX_LIMIT must be at least 1")
	}
	if c.History.DefaultLimit < 1 || c.History.DefaultLimit > c.History.MaxLimit {
		return fmt.Errorf("HISTORY_DEFAULT_LIMIT must be between 1 and HISTORY_MAX_LIMIT (%d)", c.History.MaxLimit)
	}
	if c.History.MaintenanceInterval < 0 {
		return fmt.Errorf("HISTORY_MAINTENANCE_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// HasWildcardCORS reports whether any CORS origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
