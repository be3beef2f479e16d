// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/config"
	"github.com/tomtom215/outfitter/internal/recommend"
)

// buildRecommendConfig maps the koanf settings onto recommend.Config.
// Zero values keep the package defaults.
func buildRecommendConfig(cfg *config.RecommendConfig) *recommend.Config {
	rc := recommend.DefaultConfig()

	if cfg.DefaultLimit > 0 {
		rc.DefaultLimit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 {
		rc.MaxLimit = min(cfg.MaxLimit, recommend.MaxLimit)
	}
	if cfg.EngineTimeout > 0 {
		rc.EngineTimeout = cfg.EngineTimeout
	}
	if cfg.Seed != 0 {
		rc.Seed = cfg.Seed
	}
	if cfg.MaxCombinations > 0 {
		rc.MaxCombinations = cfg.MaxCombinations
	}
	if cfg.TopOutfits > 0 {
		rc.TopOutfits = cfg.TopOutfits
	}

	b := &cfg.Breaker
	if b.MaxRequests > 0 {
		rc.Breaker.MaxRequests = b.MaxRequests
	}
	if b.Interval > 0 {
		rc.Breaker.Interval = b.Interval
	}
	if b.Timeout > 0 {
		rc.Breaker.Timeout = b.Timeout
	}
	if b.MinRequests > 0 {
		rc.Breaker.MinRequests = b.MinRequests
	}
	if b.FailureRatio > 0 {
		rc.Breaker.FailureRatio = b.FailureRatio
	}
	if b.ConsecutiveTrip > 0 {
		rc.Breaker.ConsecutiveTrip = b.ConsecutiveTrip
	}
	return rc
}

// initRecommend builds the rule engine, optionally behind the circuit
// breaker, and the façade that drives it.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.RecommendConfig, accessor recommend.ProfileAccessor, logger zerolog.Logger) (*recommend.Service, error) {
	rc := buildRecommendConfig(cfg)

	var engine recommend.ScoringEngine = recommend.NewRuleEngine(rc, logger)
	if cfg.Breaker.Enabled {
		engine = recommend.NewBreakerEngine(engine, rc.Breaker)
		logger.Info().
			Uint32("consecutive_trip", rc.Breaker.ConsecutiveTrip).
			Float64("failure_ratio", rc.Breaker.FailureRatio).
			Dur("open_timeout", rc.Breaker.Timeout).
			Msg("Scoring engine circuit breaker enabled")
	}

	service, err := recommend.NewService(accessor, engine, rc, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation service: %w", err)
	}

	logger.Info().
		Int("default_limit", rc.DefaultLimit).
		Int("max_limit", rc.MaxLimit).
		Dur("engine_timeout", rc.EngineTimeout).
		Msg("Recommendation service initialized")
	return service, nil
}
