// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package supervisor runs outfitter's long-lived services under a suture v4
supervisor tree.

# Tree Layout

	outfitter
	├── storage-layer
	│   ├── maintenance:duckdb-checkpoint
	│   └── maintenance:badger-gc        (HISTORY_BACKEND=badger)
	└── api-layer
	    └── http-server

Each layer has its own failure counter, so a maintenance task stuck in a
crash loop backs off without touching the HTTP server.

# Restart Policy

TreeConfig carries suture's Spec knobs. Zero values fall back to
DefaultTreeConfig: threshold 5, decay 30s, backoff 15s, shutdown timeout 10s.
Supervisor events (start, terminate, backoff, stop timeout) are logged through
sutureslog, normally fed by logging.NewSlogLogger so they land in zerolog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

See package services for the service wrappers.
*/
package supervisor
