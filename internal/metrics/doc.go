// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package metrics provides Prometheus metrics for Outfitter.

All collectors are registered with the default registry through promauto at
package init and exported on /metrics by the API router.

# Metric Families

  - duckdb_query_*: query latency and errors per operation and table
  - api_*: request totals, latency, and in-flight count per route pattern
  - outfit_recommendation*: generate outcomes by status and error code
  - scoring_engine_duration_seconds: engine latency by result
  - recommendation_history_*: save and load outcomes per backend
  - circuit_breaker_*: state, transitions, and request results of the engine breaker
*/
package metrics
