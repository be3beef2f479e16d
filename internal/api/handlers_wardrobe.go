// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/outfitter/internal/database"
	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/models"
)

// requireUser writes a 404 or 500 and returns false unless userID exists.
func (h *Handler) requireUser(ctx context.Context, w http.ResponseWriter, userID int64) bool {
	exists, err := h.wardrobe.UserExists(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to look up user", err)
		return false
	}
	if !exists {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "user not found", nil)
		return false
	}
	return true
}

// ListWardrobeItems handles GET /api/v1/users/{userID}/wardrobe/items.
func (h *Handler) ListWardrobeItems(w http.ResponseWriter, r *http.Request) {
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
	if items == nil {
		items = []models.ClothingItem{}
	}

	respondData(w, http.StatusOK, "success", map[string]interface{}{
		"items": items,
		"count": len(items),
	}, start)
}

// AddWardrobeItem handles POST /api/v1/users/{userID}/wardrobe/items.
func (h *Handler) AddWardrobeItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}

	var req ClothingItemRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidBody, "request body must be a JSON object", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	item := req.Item(userID)
	err := h.wardrobe.AddClothingItem(ctx, &item)
	switch {
	case errors.Is(err, database.ErrUserNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "user not found", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to add clothing item", err)
		return
	}

	logging.CtxDebug(ctx).Int64("item_id", item.ID).Str("category", item.Category).Msg("Clothing item added")
	respondData(w, http.StatusCreated, "success", map[string]interface{}{"item": item}, start)
}

// UpdateWardrobeItem handles PUT /api/v1/users/{userID}/wardrobe/items/{itemID}.
// Only the fields present in the body change.
func (h *Handler) UpdateWardrobeItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}
	itemID, ok := parseIDParam(r, "itemID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidItemID, "item ID must be a positive integer", nil)
		return
	}

	var patch ClothingItemPatch
	if err := decodeJSONBody(w, r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidBody, "request body must be a JSON object", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	current, err := h.wardrobe.GetClothingItem(ctx, userID, itemID)
	switch {
	case errors.Is(err, database.ErrItemNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "clothing item not found", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to load clothing item", err)
		return
	}

	item := patch.Apply(*current)
	merged := newClothingItemRequest(&item)
	if apiErr := validateRequest(&merged); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	err = h.wardrobe.UpdateClothingItem(ctx, &item)
	switch {
	case errors.Is(err, database.ErrItemNotFound):
		// Deleted between the read and the write.
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "clothing item not found", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to update clothing item", err)
		return
	}

	respondData(w, http.StatusOK, "success", map[string]interface{}{"item": item}, start)
}

// DeleteWardrobeItem handles DELETE /api/v1/users/{userID}/wardrobe/items/{itemID}.
func (h *Handler) DeleteWardrobeItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}
	itemID, ok := parseIDParam(r, "itemID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidItemID, "item ID must be a positive integer", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	err := h.wardrobe.DeleteClothingItem(ctx, userID, itemID)
	switch {
	case errors.Is(err, database.ErrItemNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "clothing item not found", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to delete clothing item", err)
		return
	}

	respondData(w, http.StatusOK, "success", map[string]interface{}{
		"deleted": true,
		"id":      itemID,
	}, start)
}

// GetProfile handles GET /api/v1/users/{userID}/profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	profile, err := h.wardrobe.GetUserProfile(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to load profile", err)
		return
	}
	if profile == nil {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "profile not found", nil)
		return
	}

	respondData(w, http.StatusOK, "success", map[string]interface{}{"profile": profile}, start)
}

// UpdateProfile handles PUT /api/v1/users/{userID}/profile. The profile is
// created on first write; later writes change only the fields present.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidUserID, "user ID must be a positive integer", nil)
		return
	}

	var req ProfileRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidBody, "request body must be a JSON object", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	current, err := h.wardrobe.GetUserProfile(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to load profile", err)
		return
	}
	base := models.UserProfile{UserID: userID}
	if current != nil {
		base = *current
	}

	profile := req.Apply(base)
	fields := newProfileFields(&profile)
	if apiErr := validateRequest(&fields); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	err = h.wardrobe.UpsertUserProfile(ctx, &profile)
	switch {
	case errors.Is(err, database.ErrUserNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "user not found", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "failed to save profile", err)
		return
	}

	respondData(w, http.StatusOK, "success", map[string]interface{}{"profile": profile}, start)
}
