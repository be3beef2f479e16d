// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package models

import "time"

// Clothing categories understood by the rule engine.
const (
	CategoryTop       = "top"
	CategoryBottom    = "bottom"
	CategoryDress     = "dress"
	CategoryShoes     = "shoes"
	CategoryOuterwear = "outerwear"
	CategoryAccessory = "accessory"
)

// SeasonAll and OccasionAll mark items that fit any season or occasion.
const (
	SeasonAll   = "all"
	OccasionAll = "all"
)

// User is a wardrobe owner.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile carries style preferences used to personalize scoring.
type UserProfile struct {
	UserID          int64    `json:"user_id"`
	Gender          string   `json:"gender,omitempty"`
	Age             int      `json:"age,omitempty"`
	PreferredColors []string `json:"preferred_colors"`
	PreferredStyles []string `json:"preferred_styles"`
	Occasions       []string `json:"occasions"`
}

// Complete reports whether the profile has enough data to personalize.
func (p *UserProfile) Complete() bool {
	return p != nil && (len(p.PreferredColors) > 0 || len(p.PreferredStyles) > 0)
}

// ClothingItem is one piece in a user's wardrobe.
//
// Season and Occasion may be "all" (or empty, treated the same way).
type ClothingItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Color     string    `json:"color,omitempty"`
	Style     string    `json:"style,omitempty"`
	Season    string    `json:"season,omitempty"`
	Occasion  string    `json:"occasion,omitempty"`
	Material  string    `json:"material,omitempty"`
	Pattern   string    `json:"pattern,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
