// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/models"
)

// UserExists reports whether a user with the given ID exists.
func (db *DB) UserExists(ctx context.Context, userID int64) (exists bool, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "users", start, err) }(time.Now())

	err = db.conn.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	return exists, nil
}

const clothingItemColumns = `id, user_id, name, category, color, style, season, occasion,
		       material, pattern, image_url, created_at`

// GetWardrobe returns every clothing item owned by the user, oldest first.
// A user without items gets an empty slice.
func (db *DB) GetWardrobe(ctx context.Context, userID int64) (items []models.ClothingItem, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "clothing_items", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+clothingItemColumns+`
		FROM clothing_items
		WHERE user_id = ?
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wardrobe for user %d: %w", userID, err)
	}
	defer rows.Close()

	items = []models.ClothingItem{}
	for rows.Next() {
		item, err := scanClothingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wardrobe: %w", err)
	}
	return items, nil
}

// GetClothingItem returns one of the user's items, or ErrItemNotFound.
func (db *DB) GetClothingItem(ctx context.Context, userID, itemID int64) (item *models.ClothingItem, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "clothing_items", start, err) }(time.Now())

	row := db.conn.QueryRowContext(ctx, `
		SELECT `+clothingItemColumns+`
		FROM clothing_items
		WHERE id = ? AND user_id = ?`, itemID, userID)
	item, err = scanClothingItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d for user %d: %w", itemID, userID, ErrItemNotFound)
	}
	return item, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClothingItem(row rowScanner) (*models.ClothingItem, error) {
	var item models.ClothingItem
	var color, style, season, occasion, material, pattern, imageURL sql.NullString
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Category,
		&color, &style, &season, &occasion, &material, &pattern, &imageURL, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan clothing item: %w", err)
	}
	item.Color = color.String
	item.Style = style.String
	item.Season = season.String
	item.Occasion = occasion.String
	item.Material = material.String
	item.Pattern = pattern.String
	item.ImageURL = imageURL.String
	item.CreatedAt = item.CreatedAt.UTC()
	return &item, nil
}

// GetUserProfile returns the user's style profile, or nil when the user has
// not set one up.
func (db *DB) GetUserProfile(ctx context.Context, userID int64) (profile *models.UserProfile, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "user_profiles", start, err) }(time.Now())

	var gender sql.NullString
	var age sql.NullInt64
	var colors, styles, occasions string
	err = db.conn.QueryRowContext(ctx, `
		SELECT gender, age, preferred_colors, preferred_styles, occasions
		FROM user_profiles WHERE user_id = ?`, userID).
		Scan(&gender, &age, &colors, &styles, &occasions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile for user %d: %w", userID, err)
	}

	profile = &models.UserProfile{UserID: userID, Gender: gender.String, Age: int(age.Int64)}
	if err := decodeList(colors, &profile.PreferredColors); err != nil {
		return nil, fmt.Errorf("invalid preferred_colors for user %d: %w", userID, err)
	}
	if err := decodeList(styles, &profile.PreferredStyles); err != nil {
		return nil, fmt.Errorf("invalid preferred_styles for user %d: %w", userID, err)
	}
	if err := decodeList(occasions, &profile.Occasions); err != nil {
		return nil, fmt.Errorf("invalid occasions for user %d: %w", userID, err)
	}
	return profile, nil
}

// CreateUser inserts a user and returns it with its assigned ID.
func (db *DB) CreateUser(ctx context.Context, username, email string) (user *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "users", start, err) }(time.Now())

	user = &models.User{Username: username, Email: email, CreatedAt: time.Now().UTC()}
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO users (username, email, created_at) VALUES (?, ?, ?) RETURNING id`,
		username, nullString(email), user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	return user, nil
}

// UpsertUserProfile creates or replaces the user's style profile.
func (db *DB) UpsertUserProfile(ctx context.Context, profile *models.UserProfile) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("upsert", "user_profiles", start, err) }(time.Now())

	if err := db.requireUser(ctx, profile.UserID); err != nil {
		return err
	}

	colors, err := encodeList(profile.PreferredColors)
	if err != nil {
		return err
	}
	styles, err := encodeList(profile.PreferredStyles)
	if err != nil {
		return err
	}
	occasions, err := encodeList(profile.Occasions)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, gender, age, preferred_colors, preferred_styles, occasions, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			gender = excluded.gender,
			age = excluded.age,
			preferred_colors = excluded.preferred_colors,
			preferred_styles = excluded.preferred_styles,
			occasions = excluded.occasions,
			updated_at = excluded.updated_at`,
		profile.UserID, nullString(profile.Gender), profile.Age, colors, styles, occasions, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert profile for user %d: %w", profile.UserID, err)
	}
	return nil
}

// AddClothingItem stores item for its owner and sets item.ID and item.CreatedAt.
func (db *DB) AddClothingItem(ctx context.Context, item *models.ClothingItem) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "clothing_items", start, err) }(time.Now())

	if err := db.requireUser(ctx, item.UserID); err != nil {
		return err
	}

	item.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO clothing_items (user_id, name, category, color, style, season, occasion,
		                            material, pattern, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		item.UserID, item.Name, item.Category,
		nullString(item.Color), nullString(item.Style), nullString(item.Season), nullString(item.Occasion),
		nullString(item.Material), nullString(item.Pattern), nullString(item.ImageURL), item.CreatedAt).
		Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to add clothing item %q: %w", item.Name, err)
	}
	return nil
}

// UpdateClothingItem overwrites the mutable columns of item, matched by
// item.ID and item.UserID. item.CreatedAt is refreshed from storage.
func (db *DB) UpdateClothingItem(ctx context.Context, item *models.ClothingItem) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "clothing_items", start, err) }(time.Now())

	err = db.conn.QueryRowContext(ctx, `
		UPDATE clothing_items
		SET name = ?, category = ?, color = ?, style = ?, season = ?, occasion = ?,
		    material = ?, pattern = ?, image_url = ?
		WHERE id = ? AND user_id = ?
		RETURNING created_at`,
		item.Name, item.Category,
		nullString(item.Color), nullString(item.Style), nullString(item.Season), nullString(item.Occasion),
		nullString(item.Material), nullString(item.Pattern), nullString(item.ImageURL),
		item.ID, item.UserID).
		Scan(&item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("item %d for user %d: %w", item.ID, item.UserID, ErrItemNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update clothing item %d: %w", item.ID, err)
	}
	item.CreatedAt = item.CreatedAt.UTC()
	return nil
}

// DeleteClothingItem removes one of the user's items. Saved history keeps
// its references to the deleted ID.
func (db *DB) DeleteClothingItem(ctx context.Context, userID, itemID int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "clothing_items", start, err) }(time.Now())

	res, err := db.conn.ExecContext(ctx, `DELETE FROM clothing_items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete clothing item %d: %w", itemID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %d for user %d: %w", itemID, userID, ErrItemNotFound)
	}
	return nil
}

func (db *DB) requireUser(ctx context.Context, userID int64) error {
	exists, err := db.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(raw string, dst *[]string) error {
	*dst = []string{}
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
