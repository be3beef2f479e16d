// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package models

import (
	"time"
)

// APIResponse is the envelope used by every HTTP endpoint.
//
// Status is "success" (see Data) or "error" (see Error). A failed
// recommendation is returned with Status "error" and the failure result in
// Data, so clients can read the same fields either way.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "INVALID_USER_ID", "message": "user ID must be a positive integer"},
//	  "metadata": {"timestamp": "2026-10-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable code with a human-readable message.
//
// Common codes:
//   - VALIDATION_ERROR: invalid request body or parameters
//   - INVALID_USER_ID, INVALID_HISTORY_ID: malformed path parameters
//   - NOT_FOUND: the addressed record does not exist
//   - DATABASE_ERROR: storage failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
