// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/models"
)

// readinessTimeout bounds each storage ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if every storage backend answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := len(h.pingers) > 0
	for _, p := range h.pingers {
		if err := ping(r.Context(), p); err != nil {
			logging.CtxWarn(r.Context()).Err(err).Msg("Readiness check failed")
			ready = false
			break
		}
	}

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"storage_connected": ready,
			"ready_to_serve":    ready,
			"uptime":            time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

func ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()
	return p.Ping(ctx)
}
