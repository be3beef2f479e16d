// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/outfitter/internal/history"
	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/recommend"
)

// RecommendOutfit handles POST /api/v1/users/{userID}/recommendations/outfit.
// A failed recommendation is a 400 carrying the failure result. A successful
// one is saved to history unless save_history is false.
func (h *Handler) RecommendOutfit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}

	var req OutfitRequest
	if err := decodeJSONBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidBody, "request body must be a JSON object", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result := h.recommender.Generate(ctx, userID, req.Context())
	if !result.Succeeded() {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status: "error",
			Data:   OutfitResponse{Recommendation: result},
			Metadata: models.Metadata{
				Timestamp:   time.Now(),
				QueryTimeMS: time.Since(start).Milliseconds(),
			},
			Error: &models.APIError{
				Code:    string(result.ErrorCode),
				Message: result.Error,
			},
		})
		return
	}

	resp := OutfitResponse{Recommendation: result}
	if req.ShouldSave() {
		outcome := h.history.Save(ctx, userID, result)
		if !outcome.Succeeded() {
			logging.CtxWarn(ctx).
				Int64("user_id", userID).
				Str("error", outcome.Error).
				Msg("Recommendation generated but not saved to history")
		}
		resp.History = &outcome
	}

	respondData(w, http.StatusOK, "success", resp, start)
}

// SaveHistory handles POST /api/v1/users/{userID}/recommendations/history.
// The body is a recommendation result as returned by RecommendOutfit.
func (h *Handler) SaveHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}

	var result recommend.Result
	if err := decodeJSONBody(w, r, &result); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidBody, "request body must be a recommendation result", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	outcome := h.history.Save(ctx, userID, &result)
	if !outcome.Succeeded() {
		respondJSON(w, http.StatusUnprocessableEntity, &models.APIResponse{
			Status: "error",
			Data:   outcome,
			Metadata: models.Metadata{
				Timestamp: time.Now(),
			},
			Error: &models.APIError{
				Code:    ErrCodeValidation,
				Message: outcome.Error,
			},
		})
		return
	}

	respondData(w, http.StatusCreated, "success", outcome, start)
}

// ListHistory handles GET /api/v1/users/{userID}/recommendations/history.
// The limit query parameter is clamped by the store; unknown users and
// storage faults produce an empty list.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}
	limit := getIntParam(r, "limit", h.historyDefaultLimit)

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	records := h.history.Load(ctx, userID, limit)
	respondData(w, http.StatusOK, "success", map[string]interface{}{
		"history": records,
		"count":   len(records),
	}, start)
}

// RecordFeedback handles PUT /api/v1/users/{userID}/recommendations/history/{historyID}/feedback.
func (h *Handler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}
	historyID, ok := parseIDParam(r, "historyID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidHistoryID, "history ID must be a positive integer", nil)
		return
	}

	var req FeedbackRequest
	if err := decodeJSONBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidBody, "request body must be a JSON object", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	err := h.history.RecordFeedback(ctx, userID, historyID, models.Feedback(req.Feedback), req.Reason)
	switch {
	case errors.Is(err, history.ErrHistoryNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "history record not found", nil)
		return
	case errors.Is(err, history.ErrInvalidFeedback):
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to record feedback", err)
		return
	}

	respondData(w, http.StatusOK, "success", map[string]interface{}{
		"history_id": historyID,
		"feedback":   req.Feedback,
		"reason":     req.Reason,
	}, start)
}

// WardrobeGaps handles GET /api/v1/users/{userID}/wardrobe/gaps.
func (h *Handler) WardrobeGaps(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	if !h.requireUser(ctx, w, userID) {
		return
	}

	items, err := h.wardrobe.GetWardrobe(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to load wardrobe", err)
		return
	}

	suggestions := recommend.AnalyzeWardrobeGaps(items)
	respondData(w, http.StatusOK, "success", map[string]interface{}{
		"suggestions":   suggestions,
		"count":         len(suggestions),
		"wardrobe_size": len(items),
	}, start)
}
