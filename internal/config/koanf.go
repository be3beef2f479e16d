// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/outfitter/config.yaml",
	"/etc/outfitter/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// History backends.
const (
	HistoryBackendDuckDB = "duckdb"
	HistoryBackendBadger = "badger"
)

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:                   "/data/outfitter.duckdb",
			MaxMemory:              "1GB",
			Threads:                0,
			PreserveInsertionOrder: true,
			SeedDemoData:           false,
		},
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			CORSOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			DefaultLimit:    5,
			MaxLimit:        20,
			EngineTimeout:   5 * time.Second,
			Seed:            42,
			MaxCombinations: 20,
			TopOutfits:      5,
			Breaker: BreakerConfig{
				Enabled:         true,
				MaxRequests:     3,
				Interval:        time.Minute,
				Timeout:         time.Minute,
				MinRequests:     10,
				FailureRatio:    0.6,
				ConsecutiveTrip: 5,
			},
		},
		History: HistoryConfig{
			Backend:             HistoryBackendDuckDB,
			BadgerPath:          "/data/history",
			DefaultLimit:        20,
			MaxLimit:            100,
			MaintenanceInterval: 10 * time.Minute,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults from defaultConfig
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"duckdb_path":                  "database.path",
	"duckdb_max_memory":            "database.max_memory",
	"duckdb_threads":               "database.threads",
	"duckdb_preserve_order":        "database.preserve_insertion_order",
	"seed_demo_data":               "database.seed_demo_data",
	"http_port":                    "server.port",
	"http_host":                    "server.host",
	"http_timeout":                 "server.timeout",
	"environment":                  "server.environment",
	"cors_origins":                 "security.cors_origins",
	"log_level":                    "logging.level",
	"log_format":                   "logging.format",
	"log_caller":                   "logging.caller",
	"recommend_default_limit":      "recommend.default_limit",
	"recommend_max_limit":          "recommend.max_limit",
	"recommend_engine_timeout":     "recommend.engine_timeout",
	"recommend_seed":               "recommend.seed",
	"recommend_max_combinations":   "recommend.max_combinations",
	"recommend_top_outfits":        "recommend.top_outfits",
	"breaker_enabled":              "recommend.breaker.enabled",
	"breaker_max_requests":         "recommend.breaker.max_requests",
	"breaker_interval":             "recommend.breaker.interval",
	"breaker_timeout":              "recommend.breaker.timeout",
	"breaker_min_requests":         "recommend.breaker.min_requests",
	"breaker_failure_ratio":        "recommend.breaker.failure_ratio",
	"breaker_consecutive_failures": "recommend.breaker.consecutive_trip",
	"history_backend":              "history.backend",
	"history_badger_path":          "history.badger_path",
	"history_default_limit":        "history.default_limit",
	"history_max_limit":            "history.max_limit",
	"history_maintenance_interval": "history.maintenance_interval",
}

// envTransformFunc maps an environment variable name to its koanf path.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
//   - HISTORY_BACKEND -> history.backend
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
