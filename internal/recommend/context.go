// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"strings"
	"time"
)

// Context defaults.
const (
	DefaultOccasion = "daily"
	DefaultWeather  = "sunny"
	DefaultSeason   = "spring"
	MinLimit        = 1

	// MaxLimit is the hard ceiling for a request limit. Config.MaxLimit
	// may lower it but never raise it.
	MaxLimit = 20
)

// Resolve applies defaults to c and clamps its limit to
// [MinLimit, min(maxLimit, MaxLimit)].
// Unrecognized occasion, weather, season, and location values are kept as-is.
func Resolve(c Context, defaultLimit, maxLimit int) ResolvedContext {
	limit := defaultLimit
	if c.Limit != nil {
		limit = *c.Limit
	}

	return ResolvedContext{
		Occasion: orDefault(c.Occasion, DefaultOccasion),
		Weather:  orDefault(c.Weather, DefaultWeather),
		Season:   orDefault(c.Season, DefaultSeason),
		Location: strings.TrimSpace(c.Location),
		Limit:    clamp(limit, MinLimit, min(maxLimit, MaxLimit)),
	}
}

// Echo returns the context as reported in a success result.
func (rc ResolvedContext) Echo(at time.Time) ContextEcho {
	ts := at.UTC()
	return ContextEcho{
		Occasion:  rc.Occasion,
		Weather:   rc.Weather,
		Season:    rc.Season,
		Location:  rc.Location,
		Timestamp: &ts,
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
