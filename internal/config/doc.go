// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package config provides centralized configuration management for Outfitter.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (config.yaml, config.yml, /etc/outfitter/config.yaml,
    or the path in CONFIG_PATH)
 3. Environment variables, mapped explicitly through envTransformFunc

# Sections

  - database: DuckDB path and tuning, demo data seeding
  - server: HTTP listen address and timeouts
  - security: CORS origins
  - logging: zerolog level and format
  - recommend: limits, engine timeout, seed, circuit breaker
  - history: persistence backend (duckdb or badger) and load limits

Validation runs at the end of Load and names the environment variable that
controls the offending value.
*/
package config
