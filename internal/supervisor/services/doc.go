// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package services adapts long-running outfitter components to suture v4's
Serve(ctx) error contract.

# Available Services

HTTPServerService runs the outfit API. It translates ListenAndServe and
Shutdown into a context-driven Serve and drains in-flight requests within a
bounded shutdown timeout.

MaintenanceService runs a Maintainer on a ticker. The server uses it for
DuckDB CHECKPOINT and for BadgerDB value log garbage collection when history
lives in Badger. Failed runs are logged, counted in
storage_maintenance_runs_total and retried on the next tick.

# Usage

	tree.AddStorageService(services.NewMaintenanceService(
	    services.MaintenanceFunc(db.Checkpoint),
	    services.MaintenanceServiceConfig{Task: "duckdb-checkpoint", Interval: 10 * time.Minute},
	    logging.WithComponent("maintenance"),
	))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
*/
package services
