// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.2, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_recommendations_total",
			Help: "Total number of outfit generations by outcome",
		},
		[]string{"status", "error_code"}, // error_code is "" on success
	)

	RecommendationItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_recommendation_items",
			Help:    "Number of items returned per successful recommendation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 20},
		},
	)

	EngineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scoring_engine_duration_seconds",
			Help:    "Duration of scoring engine calls in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.2, 0.5, 1},
		},
		[]string{"engine", "result"},
	)

	// History Metrics
	HistorySavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_history_saves_total",
			Help: "Total number of history save attempts by outcome",
		},
		[]string{"backend", "status"},
	)

	HistoryLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_history_loads_total",
			Help: "Total number of history loads by outcome",
		},
		[]string{"backend", "result"}, // result: "ok", "empty", "error"
	)

	MaintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_maintenance_runs_total",
			Help: "Total number of periodic storage maintenance runs (checkpoint, value log GC)",
		},
		[]string{"task", "result"},
	)

	MaintenanceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_maintenance_duration_seconds",
			Help:    "Duration of periodic storage maintenance runs",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 30},
		},
		[]string{"task"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one generate outcome. itemCount is only
// observed for successful results.
func RecordRecommendation(status, errorCode string, itemCount int) {
	RecommendationsTotal.WithLabelValues(status, errorCode).Inc()
	if errorCode == "" {
		RecommendationItems.Observe(float64(itemCount))
	}
}

// RecordEngineCall records the duration of one scoring call.
func RecordEngineCall(engine string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	EngineDuration.WithLabelValues(engine, result).Observe(duration.Seconds())
}

// RecordHistorySave records a history save attempt.
func RecordHistorySave(backend string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	HistorySavesTotal.WithLabelValues(backend, status).Inc()
}

// RecordHistoryLoad records a history load; err takes precedence over count.
func RecordHistoryLoad(backend string, count int, err error) {
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case count == 0:
		result = "empty"
	}
	HistoryLoadsTotal.WithLabelValues(backend, result).Inc()
}

// RecordMaintenance records one storage maintenance run.
func RecordMaintenance(task string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	MaintenanceRuns.WithLabelValues(task, result).Inc()
	MaintenanceDuration.WithLabelValues(task).Observe(duration.Seconds())
}
