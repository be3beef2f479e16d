// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"github.com/tomtom215/outfitter/internal/models"
)

// Gap suggestion priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// MaxGapSuggestions caps AnalyzeWardrobeGaps output.
const MaxGapSuggestions = 10

// minEssentialCount is the per-category count below which basics are suggested.
const minEssentialCount = 3

// GapSuggestion is one purchase suggestion for a thin wardrobe.
type GapSuggestion struct {
	Type     string `json:"type"`
	Item     string `json:"item"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
}

var essentials = []struct {
	category string
	items    []string
}{
	{models.CategoryTop, []string{"white shirt", "basic t-shirt", "knit sweater"}},
	{models.CategoryBottom, []string{"black trousers", "jeans", "a-line skirt"}},
	{models.CategoryShoes, []string{"black flats", "sneakers", "heels"}},
	{models.CategoryOuterwear, []string{"trench coat", "blazer", "knit cardigan"}},
}

// AnalyzeWardrobeGaps suggests basics for under-stocked categories, the
// black and white staples, and formal wear, in that order.
func AnalyzeWardrobeGaps(items []models.ClothingItem) []GapSuggestion {
	categories := make(map[string]int)
	colors := make(map[string]int)
	styles := make(map[string]int)
	for i := range items {
		categories[items[i].Category]++
		colors[items[i].Color]++
		styles[items[i].Style]++
	}

	suggestions := make([]GapSuggestion, 0, MaxGapSuggestions)
	for _, e := range essentials {
		if categories[e.category] >= minEssentialCount {
			continue
		}
		for _, item := range e.items {
			suggestions = append(suggestions, GapSuggestion{
				Type:     "essential",
				Item:     item,
				Category: e.category,
				Reason:   "more basic " + e.category + " options",
				Priority: PriorityHigh,
			})
		}
	}

	if colors["black"] == 0 {
		suggestions = append(suggestions, GapSuggestion{
			Type:     "color",
			Item:     "black basic piece",
			Category: "any",
			Reason:   "black pairs with almost everything",
			Priority: PriorityMedium,
		})
	}
	if colors["white"] == 0 {
		suggestions = append(suggestions, GapSuggestion{
			Type:     "color",
			Item:     "white basic piece",
			Category: "any",
			Reason:   "white is the most versatile base color",
			Priority: PriorityMedium,
		})
	}
	if styles["formal"] == 0 && styles["business"] == 0 {
		suggestions = append(suggestions, GapSuggestion{
			Type:     "style",
			Item:     "business suit",
			Category: "suit",
			Reason:   "adds options for formal occasions",
			Priority: PriorityLow,
		})
	}

	if len(suggestions) > MaxGapSuggestions {
		suggestions = suggestions[:MaxGapSuggestions]
	}
	return suggestions
}
