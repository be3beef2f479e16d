// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package models

import "time"

// RecommendationTypeOutfit tags history records produced by outfit generation.
const RecommendationTypeOutfit = "outfit"

// Feedback is the user's verdict on a past recommendation.
type Feedback string

// Feedback values.
const (
	FeedbackLiked    Feedback = "liked"
	FeedbackDisliked Feedback = "disliked"
	FeedbackNeutral  Feedback = "neutral"
)

// Valid reports whether f is one of the known feedback values.
func (f Feedback) Valid() bool {
	switch f {
	case FeedbackLiked, FeedbackDisliked, FeedbackNeutral:
		return true
	}
	return false
}

// HistoryContext is the context snapshot stored with a history record.
type HistoryContext struct {
	Occasion string `json:"occasion"`
	Weather  string `json:"weather"`
	Season   string `json:"season"`
	Location string `json:"location,omitempty"`
}

// HistoryRecord is a persisted recommendation. ID and CreatedAt are assigned
// by storage; ItemIDs keeps the order of the original result.
type HistoryRecord struct {
	ID                 int64          `json:"recommendation_id"`
	UserID             int64          `json:"user_id"`
	ItemIDs            []int64        `json:"items"`
	Context            HistoryContext `json:"context"`
	Rationale          string         `json:"rationale"`
	Confidence         float64        `json:"confidence"`
	CreatedAt          time.Time      `json:"created_at"`
	UserFeedback       *Feedback      `json:"user_feedback"`
	FeedbackReason     string         `json:"feedback_reason"`
	RecommendationType string         `json:"recommendation_type"`
}

// HistoryView is the read shape returned by history loads.
type HistoryView struct {
	RecommendationID   int64          `json:"recommendation_id"`
	Items              []int64        `json:"items"`
	Context            HistoryContext `json:"context"`
	Rationale          string         `json:"rationale"`
	Confidence         float64        `json:"confidence"`
	CreatedAt          time.Time      `json:"created_at"`
	UserFeedback       *Feedback      `json:"user_feedback"`
	FeedbackReason     string         `json:"feedback_reason"`
	RecommendationType string         `json:"recommendation_type"`
}

// View converts a stored record into its read shape.
func (r *HistoryRecord) View() HistoryView {
	items := r.ItemIDs
	if items == nil {
		items = []int64{}
	}
	return HistoryView{
		RecommendationID:   r.ID,
		Items:              items,
		Context:            r.Context,
		Rationale:          r.Rationale,
		Confidence:         r.Confidence,
		CreatedAt:          r.CreatedAt,
		UserFeedback:       r.UserFeedback,
		FeedbackReason:     r.FeedbackReason,
		RecommendationType: r.RecommendationType,
	}
}

// Save outcome statuses.
const (
	SaveStatusSuccess = "success"
	SaveStatusFailure = "failure"
)

// SaveOutcome reports the result of persisting a recommendation.
// HistoryID and SavedAt are nil on failure and marshal as null.
type SaveOutcome struct {
	HistoryID *int64     `json:"history_id"`
	Status    string     `json:"status"`
	SavedAt   *time.Time `json:"saved_at"`
	Message   string     `json:"message,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Succeeded reports whether the save committed.
func (o SaveOutcome) Succeeded() bool {
	return o.Status == SaveStatusSuccess
}
