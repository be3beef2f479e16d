// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/outfitter/internal/logging"
	"github.com/tomtom215/outfitter/internal/models"
)

var demoWardrobe = []models.ClothingItem{
	{Name: "White oxford shirt", Category: models.CategoryTop, Color: "white", Style: "business", Season: "all", Occasion: "business", Material: "cotton"},
	{Name: "Gray knit sweater", Category: models.CategoryTop, Color: "gray", Style: "casual", Season: "winter", Occasion: "daily", Material: "wool"},
	{Name: "Blue striped tee", Category: models.CategoryTop, Color: "blue", Style: "casual", Season: "summer", Occasion: "all", Material: "cotton", Pattern: "striped"},
	{Name: "Black tailored trousers", Category: models.CategoryBottom, Color: "black", Style: "business", Season: "all", Occasion: "business", Material: "wool"},
	{Name: "Indigo jeans", Category: models.CategoryBottom, Color: "blue", Style: "casual", Season: "all", Occasion: "all", Material: "denim"},
	{Name: "Red wrap dress", Category: models.CategoryDress, Color: "red", Style: "elegant", Season: "spring", Occasion: "date", Material: "silk"},
	{Name: "Black leather loafers", Category: models.CategoryShoes, Color: "black", Style: "formal", Season: "all", Occasion: "all", Material: "leather"},
	{Name: "White sneakers", Category: models.CategoryShoes, Color: "white", Style: "sporty", Season: "all", Occasion: "all", Material: "canvas"},
	{Name: "Rubber rain boots", Category: models.CategoryShoes, Color: "black", Style: "casual", Season: "all", Occasion: "all", Material: "rubber"},
	{Name: "Beige trench coat", Category: models.CategoryOuterwear, Color: "beige", Style: "elegant", Season: "autumn", Occasion: "all", Material: "cotton"},
	{Name: "Silver watch", Category: models.CategoryAccessory, Color: "silver", Style: "business", Season: "all", Occasion: "all", Material: "steel"},
}

// SeedDemoData creates two demo users when the database has none: a user
// with a small wardrobe and profile, and a user with an empty wardrobe.
// It is a no-op on a database that already has users.
func (db *DB) SeedDemoData(ctx context.Context) error {
	counts, err := db.GetRecordCounts(ctx)
	if err != nil {
		return err
	}
	if counts.Users > 0 {
		logging.Debug().Int64("users", counts.Users).Msg("Skipping demo data, users already present")
		return nil
	}

	demo, err := db.CreateUser(ctx, "demo", "demo@example.com")
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	if err := db.UpsertUserProfile(ctx, &models.UserProfile{
		UserID:          demo.ID,
		PreferredColors: []string{"white", "black", "blue"},
		PreferredStyles: []string{"business", "casual"},
		Occasions:       []string{"business", "daily"},
	}); err != nil {
		return fmt.Errorf("seed demo profile: %w", err)
	}
	for i := range demoWardrobe {
		item := demoWardrobe[i]
		item.UserID = demo.ID
		if err := db.AddClothingItem(ctx, &item); err != nil {
			return fmt.Errorf("seed demo wardrobe: %w", err)
		}
	}

	if _, err := db.CreateUser(ctx, "newcomer", ""); err != nil {
		return fmt.Errorf("seed empty-wardrobe user: %w", err)
	}

	logging.Info().
		Int64("demo_user_id", demo.ID).
		Int("items", len(demoWardrobe)).
		Msg("Seeded demo data")
	return nil
}
