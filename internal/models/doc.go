// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package models defines the data structures shared across Outfitter.

Key Components:

  - User, UserProfile, ClothingItem: wardrobe data read by the profile accessor
  - HistoryRecord, HistoryView: persisted recommendations and their read shape
  - SaveOutcome: result of persisting a recommendation
  - APIResponse, APIError, Metadata: HTTP envelope

Recommendation request and result types live in package recommend, which
owns their normalization rules.
*/
package models
