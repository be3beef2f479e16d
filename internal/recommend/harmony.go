// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"slices"
	"strings"
)

// colorMatches lists the colors that pair well with each color. "any" pairs
// with everything.
var colorMatches = map[string][]string{
	"black":  {"white", "gray", "red", "gold", "silver"},
	"white":  {"black", "blue", "red", "pink", "any"},
	"gray":   {"white", "black", "pink", "blue", "yellow"},
	"red":    {"white", "black", "beige", "navy"},
	"blue":   {"white", "beige", "yellow", "red", "gray"},
	"pink":   {"white", "gray", "beige", "navy"},
	"yellow": {"white", "blue", "gray", "black"},
	"green":  {"white", "beige", "brown", "black"},
	"purple": {"white", "gray", "black", "silver"},
	"brown":  {"beige", "white", "green", "orange"},
}

// occasionStyles maps an occasion to the item styles that suit it.
var occasionStyles = map[string][]string{
	"business": {"formal", "business", "elegant"},
	"date":     {"sweet", "trendy", "elegant"},
	"party":    {"trendy", "bold"},
	"sport":    {"sporty"},
	"daily":    {"casual"},
	"travel":   {"casual", "sporty"},
}

var knownSeasons = map[string]bool{
	"spring": true,
	"summer": true,
	"autumn": true,
	"winter": true,
}

var (
	formalStyles = []string{"formal", "business", "elegant"}
	casualStyles = []string{"casual", "sporty", "street"}
)

// pairHarmony scores two colors in [0.5, 1].
func pairHarmony(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if matchesColor(a, b) || matchesColor(b, a) {
		return 1.0
	}
	if a == b {
		return 0.8
	}
	return 0.5
}

func matchesColor(from, to string) bool {
	partners := colorMatches[from]
	return slices.Contains(partners, to) || slices.Contains(partners, "any")
}

// colorHarmony averages pairHarmony over every pair of colors.
func colorHarmony(colors []string) float64 {
	if len(colors) < 2 {
		return 1.0
	}
	var total float64
	var pairs int
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			total += pairHarmony(colors[i], colors[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

func harmonyLabel(score float64) string {
	switch {
	case score >= 0.8:
		return "harmonious"
	case score >= 0.6:
		return "balanced"
	default:
		return "contrasting"
	}
}
