// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package middleware provides HTTP middleware shared by the API router.
//
// PrometheusMetrics records per-route request metrics and is installed with
// chi's Use so that the route pattern is known once the handler returns.
package middleware
