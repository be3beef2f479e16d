// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/database"
	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/recommend"
	"github.com/tomtom215/outfitter/internal/validation"
)

// Backend labels used in metrics and logs.
const (
	BackendDuckDB = config.HistoryBackendDuckDB
	BackendBadger = config.HistoryBackendBadger
)

// Load limit bounds.
const (
	MinLimit = 1
	MaxLimit = 100
)

// SavedMessage is the message of a successful SaveOutcome.
const SavedMessage = "Recommendation saved to history"

var (
	// ErrHistoryNotFound is returned when a record does not exist for the user.
	ErrHistoryNotFound = errors.New("history record not found")

	// ErrInvalidFeedback is returned for feedback outside liked/disliked/neutral.
	ErrInvalidFeedback = errors.New("feedback must be one of: liked, disliked, neutral")
)

// Repository is the persistence contract behind Store.
type Repository interface {
	// InsertHistory stores rec atomically and sets rec.ID and rec.CreatedAt.
	InsertHistory(ctx context.Context, rec *models.HistoryRecord) error

	// ListHistory returns up to limit records, newest first.
	ListHistory(ctx context.Context, userID int64, limit int) ([]models.HistoryRecord, error)

	// UpdateHistoryFeedback sets feedback on one of the user's records.
	UpdateHistoryFeedback(ctx context.Context, userID, historyID int64, feedback models.Feedback, reason string) error
}

var _ Repository = (*database.DB)(nil)

// saveRequest is the validated shape of a record about to be written.
type saveRequest struct {
	UserID     int64   `validate:"gt=0"`
	ItemIDs    []int64 `validate:"dive,gt=0"`
	Occasion   string  `validate:"notblank"`
	Weather    string  `validate:"notblank"`
	Season     string  `validate:"notblank"`
	Rationale  string  `validate:"notblank"`
	Confidence float64 `validate:"gte=0,lte=1"`
}

// Store saves and loads recommendation history.
type Store struct {
	repo     Repository
	backend  string
	maxLimit int
	logger   zerolog.Logger
}

// NewStore creates a Store over repo. backend labels metrics. A nil cfg or a
// max_limit outside [1,100] clamps loads to 100.
func NewStore(repo Repository, backend string, cfg *config.HistoryConfig) *Store {
	maxLimit := MaxLimit
	if cfg != nil && cfg.MaxLimit >= MinLimit && cfg.MaxLimit < MaxLimit {
		maxLimit = cfg.MaxLimit
	}
	return &Store{
		repo:     repo,
		backend:  backend,
		maxLimit: maxLimit,
		logger:   logging.WithComponent("history").With().Str("backend", backend).Logger(),
	}
}

// Backend returns the backend label.
func (s *Store) Backend() string { return s.backend }

// Save persists a successful recommendation result for userID. It never
// returns an error: validation and storage failures become a failure
// outcome with a nil history ID and timestamp.
func (s *Store) Save(ctx context.Context, userID int64, result *recommend.Result) (outcome models.SaveOutcome) {
	defer func() {
		metrics.RecordHistorySave(s.backend, outcome.Succeeded())
	}()

	if result == nil {
		return failureOutcome("recommendation result is required")
	}
	if !result.Succeeded() {
		return failureOutcome("only successful recommendations can be saved")
	}

	req := saveRequest{
		UserID:     userID,
		ItemIDs:    result.ItemIDs(),
		Occasion:   result.Context.Occasion,
		Weather:    result.Context.Weather,
		Season:     result.Context.Season,
		Rationale:  result.Rationale,
		Confidence: result.Confidence,
	}
	l := s.requestLogger(ctx, userID)
	if verr := validation.ValidateStruct(&req); verr != nil {
		l.Debug().Str("reason", verr.Error()).Msg("Rejected history save")
		return failureOutcome(verr.Error())
	}

	rec := &models.HistoryRecord{
		UserID:  userID,
		ItemIDs: req.ItemIDs,
		Context: models.HistoryContext{
			Occasion: req.Occasion,
			Weather:  req.Weather,
			Season:   req.Season,
			Location: result.Context.Location,
		},
		Rationale:          req.Rationale,
		Confidence:         req.Confidence,
		RecommendationType: models.RecommendationTypeOutfit,
	}
	if err := s.repo.InsertHistory(ctx, rec); err != nil {
		l.Error().Err(err).Msg("Failed to save recommendation history")
		return failureOutcome(fmt.Sprintf("failed to save history: %v", err))
	}

	id, savedAt := rec.ID, rec.CreatedAt
	l.Debug().Int64("history_id", id).Int("items", len(rec.ItemIDs)).Msg("Saved recommendation history")
	return models.SaveOutcome{
		HistoryID: &id,
		Status:    models.SaveStatusSuccess,
		SavedAt:   &savedAt,
		Message:   SavedMessage,
	}
}

// Load returns up to limit records for userID, newest first. limit is
// clamped to [1, max]. Any failure yields an empty, non-nil slice.
func (s *Store) Load(ctx context.Context, userID int64, limit int) []models.HistoryView {
	limit = s.clampLimit(limit)
	views := make([]models.HistoryView, 0, limit)
	if userID <= 0 {
		metrics.RecordHistoryLoad(s.backend, 0, nil)
		return views
	}

	records, err := s.repo.ListHistory(ctx, userID, limit)
	metrics.RecordHistoryLoad(s.backend, len(records), err)
	if err != nil {
		l := s.requestLogger(ctx, userID)
		l.Warn().Err(err).Msg("Failed to load recommendation history")
		return views
	}

	if len(records) > limit {
		records = records[:limit]
	}
	for i := range records {
		views = append(views, records[i].View())
	}
	return views
}

// RecordFeedback stores the user's verdict on one of their records.
func (s *Store) RecordFeedback(ctx context.Context, userID, historyID int64, feedback models.Feedback, reason string) error {
	if !feedback.Valid() {
		return ErrInvalidFeedback
	}
	if userID <= 0 || historyID <= 0 {
		return ErrHistoryNotFound
	}

	err := s.repo.UpdateHistoryFeedback(ctx, userID, historyID, feedback, reason)
	switch {
	case err == nil:
		l := s.requestLogger(ctx, userID)
		l.Debug().Int64("history_id", historyID).Str("feedback", string(feedback)).Msg("Recorded feedback")
		return nil
	case errors.Is(err, database.ErrRecordNotFound), errors.Is(err, ErrHistoryNotFound):
		return ErrHistoryNotFound
	default:
		return fmt.Errorf("record feedback: %w", err)
	}
}

func (s *Store) clampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

func failureOutcome(msg string) models.SaveOutcome {
	return models.SaveOutcome{
		Status: models.SaveStatusFailure,
		Error:  msg,
	}
}

func (s *Store) requestLogger(ctx context.Context, userID int64) zerolog.Logger {
	if _, ok := logging.UserIDFromContext(ctx); !ok {
		ctx = logging.ContextWithUserID(ctx, userID)
	}
	return logging.Enrich(ctx, s.logger)
}
