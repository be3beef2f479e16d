// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package api provides the HTTP REST API layer for Outfitter.

Routes (chi router):

	POST /api/v1/users/{userID}/recommendations/outfit
	POST /api/v1/users/{userID}/recommendations/history
	GET  /api/v1/users/{userID}/recommendations/history?limit=20
	PUT  /api/v1/users/{userID}/recommendations/history/{historyID}/feedback
	GET  /api/v1/users/{userID}/wardrobe/gaps
	GET  /api/v1/users/{userID}/wardrobe/items
	POST /api/v1/users/{userID}/wardrobe/items
	PUT  /api/v1/users/{userID}/wardrobe/items/{itemID}
	DEL  /api/v1/users/{userID}/wardrobe/items/{itemID}
	GET  /api/v1/users/{userID}/profile
	PUT  /api/v1/users/{userID}/profile
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics

Every response uses the models.APIResponse envelope. A failed
recommendation is a 400 whose data.recommendation still carries the full
failure result, so clients read error_code from the same shape as a
success.

Middleware stack, applied to all routes in order:

  - RequestIDWithLogging: X-Request-ID plus request and correlation IDs in
    the logging context
  - RequestLogging: one structured access log line per request
  - chi RealIP and Recoverer
  - go-chi/cors
  - middleware.PrometheusMetrics on the API routes

Usage Example:

	handler := api.NewHandler(service, store, db, cfg, db)
	router := api.NewRouter(handler, api.NewChiMiddleware(&api.ChiMiddlewareConfig{
	    CORSAllowedOrigins: cfg.Security.CORSOrigins,
	}))
	srv := &http.Server{Addr: ":8080", Handler: router.SetupChi()}
*/
package api
