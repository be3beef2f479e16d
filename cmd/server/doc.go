// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package main is the entry point for the Outfitter server.

Outfitter recommends outfits from a user's wardrobe for a given occasion,
weather and season, records each recommendation in a history store and
accepts like/dislike feedback on past recommendations.

# Startup Order

 1. Configuration: defaults, optional YAML file (CONFIG_PATH), environment (koanf v2)
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB wardrobe and profile store, optional demo seed
 4. History backend: DuckDB table or BadgerDB directory
 5. Recommendation: rule engine, optionally behind a gobreaker circuit breaker
 6. HTTP API: chi router with CORS, request IDs, Prometheus metrics
 7. Supervisor tree: suture v4 runs the HTTP server and storage maintenance

# Supervisor Tree

	outfitter
	├── storage-layer
	│   ├── maintenance:duckdb-checkpoint
	│   └── maintenance:badger-gc        (HISTORY_BACKEND=badger)
	└── api-layer
	    └── http-server

# Configuration

	DUCKDB_PATH=/data/outfitter.duckdb
	SEED_DEMO_DATA=true            # demo user 1 with a wardrobe, user 2 without
	HTTP_PORT=8080
	CORS_ORIGINS=https://app.example.com
	LOG_LEVEL=info
	LOG_FORMAT=json
	RECOMMEND_DEFAULT_LIMIT=5
	BREAKER_ENABLED=true
	HISTORY_BACKEND=badger
	HISTORY_BADGER_PATH=/data/history
	HISTORY_MAINTENANCE_INTERVAL=10m

# Example

	SEED_DEMO_DATA=true DUCKDB_PATH=./outfitter.duckdb ./outfitter

	curl -X POST localhost:8080/api/v1/users/1/recommendations/outfit \
	  -d '{"occasion":"business","weather":"rainy","season":"autumn","limit":3}'

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server, which drains in-flight requests for up to 10s, then the history
backend and DuckDB are closed.
*/
package main
