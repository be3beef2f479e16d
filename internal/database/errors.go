// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package database

import (
	"io"

	"github.com/tomtom215/outfitter/internal/logging"
)

// closeWithLog closes a resource and logs any error.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and ignores any error. Use it only in
// error paths where the close error is not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// classifyError labels an error for logs so that connection loss and
// write conflicts are distinguishable from query bugs.
func classifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case isConnectionError(err):
		return "connection"
	case isTransactionConflict(err):
		return "conflict"
	default:
		return "query"
	}
}
