// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/outfitter/internal/models"
)

// Status discriminates success and failure results.
type Status string

// Result statuses.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrorCode is the closed set of generate failure codes.
type ErrorCode string

// Error codes.
const (
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeWardrobeEmpty        ErrorCode = "WARDROBE_EMPTY"
	CodeRecommendationFailed ErrorCode = "RECOMMENDATION_FAILED"
	CodeRecommendationError  ErrorCode = "RECOMMENDATION_ERROR"
)

// Context is the situational input to Generate. Empty strings and a nil
// Limit mean "use the default".
type Context struct {
	Occasion string `json:"occasion,omitempty"`
	Weather  string `json:"weather,omitempty"`
	Season   string `json:"season,omitempty"`
	Location string `json:"location,omitempty"`
	Limit    *int   `json:"limit,omitempty"`
}

// ResolvedContext is a Context after defaults and clamping.
type ResolvedContext struct {
	Occasion string
	Weather  string
	Season   string
	Location string
	Limit    int
}

// ContextEcho is the context returned in a result. It is empty on failure,
// so every field is omitted when unset.
type ContextEcho struct {
	Occasion  string     `json:"occasion,omitempty"`
	Weather   string     `json:"weather,omitempty"`
	Season    string     `json:"season,omitempty"`
	Location  string     `json:"location,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Result is the outcome of Generate. Success and failure share this shape.
type Result struct {
	Status        Status                `json:"status"`
	Items         []models.ClothingItem `json:"items"`
	Rationale     string                `json:"rationale"`
	Confidence    float64               `json:"confidence"`
	StyleAnalysis map[string]string     `json:"style_analysis"`
	Context       ContextEcho           `json:"context"`
	Total         int                   `json:"total"`
	Error         string                `json:"error,omitempty"`
	ErrorCode     ErrorCode             `json:"error_code,omitempty"`
}

// Succeeded reports whether r is a success result.
func (r *Result) Succeeded() bool {
	return r != nil && r.Status == StatusSuccess
}

// ItemIDs returns the IDs of the result items in order.
func (r *Result) ItemIDs() []int64 {
	if r == nil {
		return nil
	}
	ids := make([]int64, len(r.Items))
	for i := range r.Items {
		ids[i] = r.Items[i].ID
	}
	return ids
}

// ProfileAccessor resolves users and their wardrobes.
type ProfileAccessor interface {
	// UserExists reports whether the user is known.
	UserExists(ctx context.Context, userID int64) (bool, error)

	// GetWardrobe returns the user's clothing items. An empty slice is not an error.
	GetWardrobe(ctx context.Context, userID int64) ([]models.ClothingItem, error)

	// GetUserProfile returns the user's style profile, or nil when none exists.
	GetUserProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
}

// EngineInput is what a ScoringEngine ranks.
type EngineInput struct {
	UserID   int64
	Profile  *models.UserProfile // nil when the user has no profile
	Wardrobe []models.ClothingItem
	Context  ResolvedContext
}

// EngineResult is a ranked candidate outfit. Zero Items means no match.
type EngineResult struct {
	Items         []models.ClothingItem
	Rationale     string
	Confidence    float64
	StyleAnalysis map[string]string
}

// ScoringEngine ranks wardrobe items for a context. A returned error is the
// engine's failure signal and must not be used to report "no match".
type ScoringEngine interface {
	Score(ctx context.Context, in *EngineInput) (*EngineResult, error)
}

// namedEngine is implemented by engines that want their own metrics label.
type namedEngine interface {
	Name() string
}

func engineName(e ScoringEngine) string {
	if n, ok := e.(namedEngine); ok {
		return n.Name()
	}
	return "custom"
}
