// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"context"
	"time"

	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/recommend"
)

// defaultRequestTimeout bounds handler work when the server config has none.
const defaultRequestTimeout = 10 * time.Second

// Recommender generates outfit recommendations.
type Recommender interface {
	Generate(ctx context.Context, userID int64, req recommend.Context) *recommend.Result
}

// HistoryStore saves and loads recommendation history.
type HistoryStore interface {
	Save(ctx context.Context, userID int64, result *recommend.Result) models.SaveOutcome
	Load(ctx context.Context, userID int64, limit int) []models.HistoryView
	RecordFeedback(ctx context.Context, userID, historyID int64, feedback models.Feedback, reason string) error
}

// WardrobeStore reads and edits users' wardrobes and style profiles.
// Item methods scope by user; a foreign item is reported as
// database.ErrItemNotFound.
type WardrobeStore interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	GetWardrobe(ctx context.Context, userID int64) ([]models.ClothingItem, error)
	GetClothingItem(ctx context.Context, userID, itemID int64) (*models.ClothingItem, error)
	AddClothingItem(ctx context.Context, item *models.ClothingItem) error
	UpdateClothingItem(ctx context.Context, item *models.ClothingItem) error
	DeleteClothingItem(ctx context.Context, userID, itemID int64) error
	GetUserProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpsertUserProfile(ctx context.Context, profile *models.UserProfile) error
}

// Pinger reports storage readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_health.go: liveness and readiness probes
//   - handlers_recommend.go: outfit, history, feedback and gap endpoints
//   - handlers_wardrobe.go: wardrobe item and style profile endpoints
type Handler struct {
	recommender         Recommender
	history             HistoryStore
	wardrobe            WardrobeStore
	pingers             []Pinger
	requestTimeout      time.Duration
	historyDefaultLimit int
	startTime           time.Time
}

// NewHandler creates a Handler. cfg may be nil in tests; every Pinger must
// succeed for the readiness probe to pass.
//
// Example:
//
//	handler := api.NewHandler(service, store, db, cfg, db, badgerRepo)
func NewHandler(recommender Recommender, history HistoryStore, wardrobe WardrobeStore, cfg *config.Config, pingers ...Pinger) *Handler {
	timeout := defaultRequestTimeout
	historyLimit := 20
	if cfg != nil {
		if cfg.Server.Timeout > 0 {
			timeout = cfg.Server.Timeout
		}
		if cfg.History.DefaultLimit > 0 {
			historyLimit = cfg.History.DefaultLimit
		}
	}

	return &Handler{
		recommender:         recommender,
		history:             history,
		wardrobe:            wardrobe,
		pingers:             pingers,
		requestTimeout:      timeout,
		historyDefaultLimit: historyLimit,
		startTime:           time.Now(),
	}
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.requestTimeout)
}
