// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Config validation error.
var ErrInvalidConfig = errors.New("invalid recommend config")

// Config contains the façade and rule engine settings.
type Config struct {
	// DefaultLimit is used when a request carries no limit.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit is the upper clamp for a request limit, at most the package
	// MaxLimit. The lower clamp is 1.
	MaxLimit int `json:"max_limit"`

	// EngineTimeout bounds one ScoringEngine call.
	EngineTimeout time.Duration `json:"engine_timeout"`

	// Seed drives the rule engine's shoe and accessory picks.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`

	// MaxCombinations caps the outfits the rule engine scores.
	MaxCombinations int `json:"max_combinations"`

	// TopOutfits is how many best outfits feed the ranked item list.
	TopOutfits int `json:"top_outfits"`

	// Breaker configures the engine circuit breaker.
	Breaker BreakerConfig `json:"breaker"`
}

// BreakerConfig configures BreakerEngine.
type BreakerConfig struct {
	Name            string        `json:"name"`
	MaxRequests     uint32        `json:"max_requests"`
	Interval        time.Duration `json:"interval"`
	Timeout         time.Duration `json:"timeout"`
	MinRequests     uint32        `json:"min_requests"`
	FailureRatio    float64       `json:"failure_ratio"`
	ConsecutiveTrip uint32        `json:"consecutive_trip"`
}

const defaultSeed = 42

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:    5,
		MaxLimit:        20,
		EngineTimeout:   5 * time.Second,
		Seed:            defaultSeed,
		MaxCombinations: 20,
		TopOutfits:      5,
		Breaker: BreakerConfig{
			Name:            "scoring-engine",
			MaxRequests:     3,
			Interval:        time.Minute,
			Timeout:         time.Minute,
			MinRequests:     10,
			FailureRatio:    0.6,
			ConsecutiveTrip: 5,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxLimit < 1 || c.MaxLimit > MaxLimit {
		return fmt.Errorf("%w: max_limit must be in [1, %d], got %d", ErrInvalidConfig, MaxLimit, c.MaxLimit)
	}
	if c.DefaultLimit < 1 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("%w: default_limit must be in [1, %d], got %d", ErrInvalidConfig, c.MaxLimit, c.DefaultLimit)
	}
	if c.EngineTimeout <= 0 {
		return fmt.Errorf("%w: engine_timeout must be positive, got %v", ErrInvalidConfig, c.EngineTimeout)
	}
	if c.MaxCombinations < 1 {
		return fmt.Errorf("%w: max_combinations must be positive, got %d", ErrInvalidConfig, c.MaxCombinations)
	}
	if c.TopOutfits < 1 {
		return fmt.Errorf("%w: top_outfits must be positive, got %d", ErrInvalidConfig, c.TopOutfits)
	}
	if c.Breaker.FailureRatio < 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("%w: breaker.failure_ratio must be in [0, 1], got %f", ErrInvalidConfig, c.Breaker.FailureRatio)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
