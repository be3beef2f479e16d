// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package recommend turns a user and a situational context into a ranked
// outfit drawn from that user's wardrobe.
//
// # Architecture
//
// Service is the façade callers use. It depends on two collaborators that
// are injected at construction time:
//
//   - ProfileAccessor: user existence, wardrobe items, and style profile
//   - ScoringEngine: ranks wardrobe items for a context
//
// RuleEngine is the default ScoringEngine. BreakerEngine wraps any engine
// in a circuit breaker so that a failing engine is rejected quickly instead
// of piling up slow calls.
//
// # Result Shape
//
// Generate always returns a *Result with the same field set. Callers may
// check Status and read the other fields without branching on type. Failure
// results carry one of four error codes:
//
//   - USER_NOT_FOUND: the user does not exist; no other collaborator is called
//   - WARDROBE_EMPTY: the user exists but owns no items (cold start)
//   - RECOMMENDATION_FAILED: the engine returned an error or the breaker is open
//   - RECOMMENDATION_ERROR: any other fault, including recovered panics
//
// An engine that finds nothing is not a failure: the result is a success
// with no items and zero confidence.
//
// # Usage
//
//	engine := recommend.NewRuleEngine(cfg, logger)
//	svc, err := recommend.NewService(db, recommend.NewBreakerEngine(engine, cfg.Breaker), cfg, logger)
//	result := svc.Generate(ctx, userID, recommend.Context{Occasion: "business"})
//	if result.Status == recommend.StatusSuccess {
//	    // result.Items, result.Rationale, result.Confidence ...
//	}
package recommend
