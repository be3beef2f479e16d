// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/models"
)

// NoMatchRationale explains a success result with no items.
const NoMatchRationale = "No outfit in the wardrobe matches this context"

// Service generates outfit recommendations. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	cfg      *Config
	accessor ProfileAccessor
	engine   ScoringEngine
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates the recommendation façade.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(accessor ProfileAccessor, engine ScoringEngine, cfg *Config, logger zerolog.Logger) (*Service, error) {
	if accessor == nil {
		return nil, errors.New("recommend: profile accessor is required")
	}
	if engine == nil {
		return nil, errors.New("recommend: scoring engine is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		cfg:      cfg.Clone(),
		accessor: accessor,
		engine:   engine,
		logger:   logger.With().Str("component", "recommend").Logger(),
		now:      time.Now,
	}, nil
}

// Generate produces a recommendation for userID in the given context.
//
// It never returns nil and never panics: every failure, including a panic in
// a collaborator, is reported as a failure Result. Generate does not write
// history.
func (s *Service) Generate(ctx context.Context, userID int64, req Context) (result *Result) {
	resolved := Resolve(req, s.cfg.DefaultLimit, s.cfg.MaxLimit)
	log := s.requestLogger(ctx, userID)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered panic during outfit generation")
			result = failure(CodeRecommendationError, fmt.Sprintf("unexpected error: %v", r))
		}
		metrics.RecordRecommendation(string(result.Status), string(result.ErrorCode), result.Total)
	}()

	if userID <= 0 {
		return failure(CodeUserNotFound, fmt.Sprintf("user %d not found", userID))
	}

	exists, err := s.accessor.UserExists(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("User lookup failed")
		return failure(CodeRecommendationError, fmt.Sprintf("user lookup failed: %v", err))
	}
	if !exists {
		log.Debug().Msg("Unknown user")
		return failure(CodeUserNotFound, fmt.Sprintf("user %d not found", userID))
	}

	wardrobe, err := s.accessor.GetWardrobe(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("Wardrobe lookup failed")
		return failure(CodeRecommendationError, fmt.Sprintf("wardrobe lookup failed: %v", err))
	}
	if len(wardrobe) == 0 {
		return failure(CodeWardrobeEmpty, "wardrobe is empty; add clothing items to receive recommendations")
	}

	profile, err := s.accessor.GetUserProfile(ctx, userID)
	if err != nil {
		// Scoring works without preferences.
		log.Warn().Err(err).Msg("Profile lookup failed, scoring without preferences")
		profile = nil
	}
	if !profile.Complete() {
		// An empty profile would add a flat preference term to every outfit.
		profile = nil
	}

	out, err := s.score(ctx, &EngineInput{
		UserID:   userID,
		Profile:  profile,
		Wardrobe: wardrobe,
		Context:  resolved,
	})
	if err != nil {
		log.Warn().Err(err).Str("occasion", resolved.Occasion).Msg("Scoring engine failed")
		return failure(CodeRecommendationFailed, fmt.Sprintf("scoring engine failed: %v", err))
	}

	result = s.success(out, resolved)
	log.Debug().
		Int("items", result.Total).
		Float64("confidence", result.Confidence).
		Str("occasion", resolved.Occasion).
		Msg("Outfit generated")
	return result
}

func (s *Service) score(ctx context.Context, in *EngineInput) (*EngineResult, error) {
	engineCtx, cancel := context.WithTimeout(ctx, s.cfg.EngineTimeout)
	defer cancel()

	start := time.Now()
	out, err := s.engine.Score(engineCtx, in)
	metrics.RecordEngineCall(engineName(s.engine), time.Since(start), err)
	return out, err
}

func (s *Service) success(out *EngineResult, rc ResolvedContext) *Result {
	result := &Result{
		Status:        StatusSuccess,
		Items:         []models.ClothingItem{},
		StyleAnalysis: map[string]string{},
		Context:       rc.Echo(s.now()),
	}

	if out == nil || len(out.Items) == 0 {
		result.Rationale = NoMatchRationale
		if out != nil && out.Rationale != "" {
			result.Rationale = out.Rationale
		}
		return result
	}

	n := min(len(out.Items), rc.Limit)
	result.Items = append(result.Items, out.Items[:n]...)
	result.Total = len(result.Items)
	result.Rationale = out.Rationale
	result.Confidence = clampConfidence(out.Confidence)
	for k, v := range out.StyleAnalysis {
		result.StyleAnalysis[k] = v
	}
	return result
}

func (s *Service) requestLogger(ctx context.Context, userID int64) zerolog.Logger {
	if _, ok := logging.UserIDFromContext(ctx); !ok {
		ctx = logging.ContextWithUserID(ctx, userID)
	}
	return logging.Enrich(ctx, s.logger)
}

func failure(code ErrorCode, msg string) *Result {
	return &Result{
		Status:        StatusError,
		Items:         []models.ClothingItem{},
		StyleAnalysis: map[string]string{},
		Error:         msg,
		ErrorCode:     code,
	}
}

func clampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
