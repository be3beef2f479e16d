// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"strings"

	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/recommend"
)

// OutfitRequest is the body of POST .../recommendations/outfit. Every field
// is optional; empty values take the service defaults and out-of-range
// limits are clamped rather than rejected.
type OutfitRequest struct {
	Occasion    string `json:"occasion" validate:"max=64"`
	Weather     string `json:"weather" validate:"max=64"`
	Season      string `json:"season" validate:"max=64"`
	Location    string `json:"location" validate:"max=128"`
	Limit       *int   `json:"limit"`
	SaveHistory *bool  `json:"save_history"`
}

// Context converts the request into the recommendation context.
func (r *OutfitRequest) Context() recommend.Context {
	return recommend.Context{
		Occasion: r.Occasion,
		Weather:  r.Weather,
		Season:   r.Season,
		Location: r.Location,
		Limit:    r.Limit,
	}
}

// ShouldSave reports whether the result should be written to history.
// Saving is on unless the client sends save_history=false.
func (r *OutfitRequest) ShouldSave() bool {
	return r.SaveHistory == nil || *r.SaveHistory
}

// FeedbackRequest is the body of PUT .../history/{historyID}/feedback.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,feedback"`
	Reason   string `json:"reason" validate:"max=500"`
}

// OutfitResponse is the data of the outfit endpoint. History is null when
// the result was not saved.
type OutfitResponse struct {
	Recommendation *recommend.Result   `json:"recommendation"`
	History        *models.SaveOutcome `json:"history"`
}

// ClothingItemRequest is the body of POST .../wardrobe/items and the
// validated shape of an item after a PUT patch is applied.
type ClothingItemRequest struct {
	Name     string `json:"name" validate:"notblank,max=128"`
	Category string `json:"category" validate:"required,oneof=top bottom dress shoes outerwear accessory"`
	Color    string `json:"color" validate:"max=64"`
	Style    string `json:"style" validate:"max=64"`
	Season   string `json:"season" validate:"max=64"`
	Occasion string `json:"occasion" validate:"max=64"`
	Material string `json:"material" validate:"max=64"`
	Pattern  string `json:"pattern" validate:"max=64"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=512"`
}

func newClothingItemRequest(item *models.ClothingItem) ClothingItemRequest {
	return ClothingItemRequest{
		Name:     item.Name,
		Category: item.Category,
		Color:    item.Color,
		Style:    item.Style,
		Season:   item.Season,
		Occasion: item.Occasion,
		Material: item.Material,
		Pattern:  item.Pattern,
		ImageURL: item.ImageURL,
	}
}

// Item builds the clothing item owned by userID.
func (r *ClothingItemRequest) Item(userID int64) models.ClothingItem {
	return models.ClothingItem{
		UserID:   userID,
		Name:     strings.TrimSpace(r.Name),
		Category: r.Category,
		Color:    r.Color,
		Style:    r.Style,
		Season:   r.Season,
		Occasion: r.Occasion,
		Material: r.Material,
		Pattern:  r.Pattern,
		ImageURL: r.ImageURL,
	}
}

// ClothingItemPatch is the body of PUT .../wardrobe/items/{itemID}. Absent
// fields keep their stored value; an empty string clears an optional field.
type ClothingItemPatch struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Color    *string `json:"color"`
	Style    *string `json:"style"`
	Season   *string `json:"season"`
	Occasion *string `json:"occasion"`
	Material *string `json:"material"`
	Pattern  *string `json:"pattern"`
	ImageURL *string `json:"image_url"`
}

// Apply returns item with the patch's present fields overwritten.
func (p *ClothingItemPatch) Apply(item models.ClothingItem) models.ClothingItem {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&item.Name, p.Name)
	set(&item.Category, p.Category)
	set(&item.Color, p.Color)
	set(&item.Style, p.Style)
	set(&item.Season, p.Season)
	set(&item.Occasion, p.Occasion)
	set(&item.Material, p.Material)
	set(&item.Pattern, p.Pattern)
	set(&item.ImageURL, p.ImageURL)
	item.Name = strings.TrimSpace(item.Name)
	return item
}

// ProfileRequest is the body of PUT .../profile. Absent fields keep their
// stored value; an empty list clears a preference.
type ProfileRequest struct {
	Gender          *string  `json:"gender"`
	Age             *int     `json:"age"`
	PreferredColors []string `json:"preferred_colors"`
	PreferredStyles []string `json:"preferred_styles"`
	Occasions       []string `json:"occasions"`
}

// Apply returns profile with the request's present fields overwritten.
func (r *ProfileRequest) Apply(profile models.UserProfile) models.UserProfile {
	if r.Gender != nil {
		profile.Gender = strings.TrimSpace(*r.Gender)
	}
	if r.Age != nil {
		profile.Age = *r.Age
	}
	if r.PreferredColors != nil {
		profile.PreferredColors = r.PreferredColors
	}
	if r.PreferredStyles != nil {
		profile.PreferredStyles = r.PreferredStyles
	}
	if r.Occasions != nil {
		profile.Occasions = r.Occasions
	}
	for _, list := range []*[]string{&profile.PreferredColors, &profile.PreferredStyles, &profile.Occasions} {
		if *list == nil {
			*list = []string{}
		}
	}
	return profile
}

// profileFields is the validated shape of a profile about to be stored.
type profileFields struct {
	Gender          string   `validate:"max=32"`
	Age             int      `validate:"gte=0,lte=150"`
	PreferredColors []string `validate:"max=32,dive,notblank,max=64"`
	PreferredStyles []string `validate:"max=32,dive,notblank,max=64"`
	Occasions       []string `validate:"max=32,dive,notblank,max=64"`
}

func newProfileFields(p *models.UserProfile) profileFields {
	return profileFields{
		Gender:          p.Gender,
		Age:             p.Age,
		PreferredColors: p.PreferredColors,
		PreferredStyles: p.PreferredStyles,
		Occasions:       p.Occasions,
	}
}
