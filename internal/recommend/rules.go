// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"context"
	"math"
	"math/rand"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/models"
)

// Score weights. Preference only counts when the user has a profile, and the
// total is divided by the sum of the weights that applied.
const (
	weightColor      = 0.30
	weightStyle      = 0.25
	weightOccasion   = 0.20
	weightSeason     = 0.15
	weightPreference = 0.10
)

// Per-category cap on tops and bottoms paired into combinations.
const maxPerCategory = 5

const (
	defaultStyle = "casual"
	unknownColor = "unknown"
)

var wetWeather = map[string]bool{"rainy": true, "snowy": true}

var wetMaterials = map[string]bool{"waterproof": true, "rubber": true}

// RuleEngine is the built-in ScoringEngine. It filters the wardrobe by
// context, assembles top+bottom and dress outfits, scores each one on color
// harmony, style consistency, occasion, season and personal preference, and
// returns the items of the best outfits.
//
// Shoe and accessory picks come from a seeded generator, so a given seed and
// wardrobe always produce the same outfits.
type RuleEngine struct {
	maxCombinations int
	topOutfits      int
	logger          zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRuleEngine creates a rule engine from cfg. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRuleEngine(cfg *Config, logger zerolog.Logger) *RuleEngine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	maxCombos := cfg.MaxCombinations
	if maxCombos < 1 {
		maxCombos = DefaultConfig().MaxCombinations
	}
	top := cfg.TopOutfits
	if top < 1 {
		top = DefaultConfig().TopOutfits
	}

	return &RuleEngine{
		maxCombinations: maxCombos,
		topOutfits:      top,
		logger:          logger.With().Str("engine", "rules").Logger(),
		//nolint:gosec // G404: deterministic outfit assembly, not security sensitive
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Name implements the metrics label hook.
func (e *RuleEngine) Name() string { return "rules" }

type outfit struct {
	items  []models.ClothingItem
	score  float64
	reason string
}

// Score ranks the wardrobe for the context. A wardrobe with no matching
// outfit yields an EngineResult with no items and a nil error.
func (e *RuleEngine) Score(ctx context.Context, in *EngineInput) (*EngineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc := in.Context
	suitable := filterItems(in.Wardrobe, rc)
	combos := e.combine(suitable)
	if len(combos) == 0 {
		e.logger.Debug().
			Int("wardrobe", len(in.Wardrobe)).
			Int("suitable", len(suitable)).
			Msg("No outfit combinations for context")
		return &EngineResult{}, nil
	}

	outfits := make([]outfit, 0, len(combos))
	for _, combo := range combos {
		outfits = append(outfits, outfit{
			items:  combo,
			score:  scoreOutfit(combo, in.Profile, rc.Occasion, rc.Season),
			reason: reasoning(combo, rc.Occasion, rc.Season),
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(outfits, func(i, j int) bool {
		return outfits[i].score > outfits[j].score
	})
	if len(outfits) > e.topOutfits {
		outfits = outfits[:e.topOutfits]
	}

	best := outfits[0]
	return &EngineResult{
		Items:         flatten(outfits),
		Rationale:     best.reason,
		Confidence:    math.Round(best.score*100) / 100,
		StyleAnalysis: analyzeStyle(best.items, rc.Season),
	}, nil
}

// filterItems keeps items suitable for the season, occasion and weather.
// An empty item season or occasion means "all".
func filterItems(items []models.ClothingItem, rc ResolvedContext) []models.ClothingItem {
	out := make([]models.ClothingItem, 0, len(items))
	for i := range items {
		item := items[i]
		if !fitsValue(item.Season, models.SeasonAll, rc.Season) {
			continue
		}
		if rc.Occasion != DefaultOccasion && !fitsValue(item.Occasion, models.OccasionAll, rc.Occasion) {
			continue
		}
		if wetWeather[rc.Weather] && item.Category == models.CategoryShoes && !wetMaterials[item.Material] {
			continue
		}
		out = append(out, item)
	}
	return out
}

func fitsValue(v, all, want string) bool {
	return v == "" || v == all || v == want
}

// combine builds candidate outfits. It holds the rng lock for the whole pass
// so concurrent calls cannot interleave draws.
func (e *RuleEngine) combine(items []models.ClothingItem) [][]models.ClothingItem {
	byCategory := make(map[string][]models.ClothingItem)
	for i := range items {
		byCategory[items[i].Category] = append(byCategory[items[i].Category], items[i])
	}

	tops := firstN(byCategory[models.CategoryTop], maxPerCategory)
	bottoms := firstN(byCategory[models.CategoryBottom], maxPerCategory)
	dresses := byCategory[models.CategoryDress]
	shoes := byCategory[models.CategoryShoes]
	accessories := byCategory[models.CategoryAccessory]

	e.mu.Lock()
	defer e.mu.Unlock()

	var combos [][]models.ClothingItem
	for _, top := range tops {
		for _, bottom := range bottoms {
			combo := []models.ClothingItem{top, bottom}
			if len(shoes) > 0 {
				combo = append(combo, shoes[e.rng.Intn(len(shoes))])
			}
			if len(accessories) > 0 && e.rng.Float64() > 0.7 {
				combo = append(combo, accessories[e.rng.Intn(len(accessories))])
			}
			combos = append(combos, combo)
		}
	}
	for _, dress := range dresses {
		combo := []models.ClothingItem{dress}
		if len(shoes) > 0 {
			combo = append(combo, shoes[e.rng.Intn(len(shoes))])
		}
		combos = append(combos, combo)
	}

	if len(combos) > e.maxCombinations {
		combos = combos[:e.maxCombinations]
	}
	return combos
}

func firstN(items []models.ClothingItem, n int) []models.ClothingItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// flatten returns the items of the best outfit followed by any unseen items
// from the runners-up.
func flatten(outfits []outfit) []models.ClothingItem {
	seen := make(map[int64]bool)
	var out []models.ClothingItem
	for _, o := range outfits {
		for i := range o.items {
			if seen[o.items[i].ID] {
				continue
			}
			seen[o.items[i].ID] = true
			out = append(out, o.items[i])
		}
	}
	return out
}

func scoreOutfit(combo []models.ClothingItem, profile *models.UserProfile, occasion, season string) float64 {
	total := colorHarmony(colorsOf(combo))*weightColor +
		styleConsistency(combo)*weightStyle +
		occasionFitness(combo, occasion)*weightOccasion +
		seasonFitness(combo, season)*weightSeason
	weights := weightColor + weightStyle + weightOccasion + weightSeason

	if profile != nil {
		total += preferenceFitness(combo, profile) * weightPreference
		weights += weightPreference
	}
	return total / weights
}

func styleConsistency(combo []models.ClothingItem) float64 {
	switch len(uniq(stylesOf(combo))) {
	case 1:
		return 1.0
	case 2:
		return 0.7
	default:
		return 0.4
	}
}

func occasionFitness(combo []models.ClothingItem, occasion string) float64 {
	wanted, ok := occasionStyles[occasion]
	if !ok {
		return 0.5
	}
	if len(combo) == 0 {
		return 0
	}
	var match float64
	for _, style := range stylesOf(combo) {
		if containsAny(style, wanted) {
			match += 1.0
		} else {
			match += 0.3
		}
	}
	return match / float64(len(combo))
}

func seasonFitness(combo []models.ClothingItem, season string) float64 {
	if !knownSeasons[season] {
		return 0.5
	}
	if len(combo) == 0 {
		return 0
	}
	var fit float64
	for i := range combo {
		if fitsValue(combo[i].Season, models.SeasonAll, season) {
			fit += 1.0
		} else {
			fit += 0.3
		}
	}
	return fit / float64(len(combo))
}

func preferenceFitness(combo []models.ClothingItem, profile *models.UserProfile) float64 {
	if len(combo) == 0 {
		return 0.5
	}
	var colorMatch, styleMatch float64
	for i := range combo {
		if slices.Contains(profile.PreferredColors, combo[i].Color) {
			colorMatch += 1.0
		} else {
			colorMatch += 0.5
		}
		if slices.Contains(profile.PreferredStyles, combo[i].Style) {
			styleMatch += 1.0
		} else {
			styleMatch += 0.5
		}
	}
	return (colorMatch + styleMatch) / float64(2*len(combo))
}

func reasoning(combo []models.ClothingItem, occasion, season string) string {
	var reasons []string
	if len(uniq(colorsOf(combo))) <= 2 {
		reasons = append(reasons, "simple harmonious colors")
	}
	if styles := uniq(stylesOf(combo)); len(styles) == 1 {
		reasons = append(reasons, "unified style ("+styles[0]+")")
	}
	if _, ok := occasionStyles[occasion]; ok {
		reasons = append(reasons, "suits "+occasion)
	}
	if knownSeasons[season] {
		reasons = append(reasons, "fits "+season)
	}
	if len(reasons) == 0 {
		return "Assembled from your wardrobe"
	}
	return strings.Join(reasons, "; ")
}

func analyzeStyle(combo []models.ClothingItem, season string) map[string]string {
	styles := stylesOf(combo)
	colors := uniq(colorsOf(combo))
	categories := make([]string, len(combo))
	seasonMatch := "full"
	for i := range combo {
		categories[i] = combo[i].Category
		if !fitsValue(combo[i].Season, models.SeasonAll, season) {
			seasonMatch = "partial"
		}
	}

	return map[string]string{
		"dominant_style":  dominant(styles),
		"color_palette":   strings.Join(colors, ", "),
		"categories":      strings.Join(categories, ", "),
		"formality_level": formality(styles),
		"color_harmony":   harmonyLabel(colorHarmony(colorsOf(combo))),
		"season_match":    seasonMatch,
	}
}

func formality(styles []string) string {
	var formal, casual int
	for _, s := range styles {
		if containsAny(s, formalStyles) {
			formal++
		}
		if containsAny(s, casualStyles) {
			casual++
		}
	}
	switch {
	case formal > casual:
		return "formal"
	case casual > formal:
		return "casual"
	default:
		return "semi-formal"
	}
}

// dominant returns the most frequent value. On ties the value that reached
// the top count first wins.
func dominant(values []string) string {
	counts := make(map[string]int, len(values))
	best, bestCount := "", 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func stylesOf(combo []models.ClothingItem) []string {
	out := make([]string, len(combo))
	for i := range combo {
		out[i] = combo[i].Style
		if out[i] == "" {
			out[i] = defaultStyle
		}
	}
	return out
}

func colorsOf(combo []models.ClothingItem) []string {
	out := make([]string, len(combo))
	for i := range combo {
		out[i] = combo[i].Color
		if out[i] == "" {
			out[i] = unknownColor
		}
	}
	return out
}

// uniq returns the distinct values in first-seen order.
func uniq(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
