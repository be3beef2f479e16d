// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/outfitter/internal/models"
)

type itemData struct {
	Item models.ClothingItem `json:"item"`
}

type profileData struct {
	Profile models.UserProfile `json:"profile"`
}

func TestListWardrobeItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		wantCode  int
		wantCount int
	}{
		{"one item", "/api/v1/users/1/wardrobe/items", http.StatusOK, 1},
		{"empty wardrobe", "/api/v1/users/2/wardrobe/items", http.StatusOK, 0},
		{"unknown user", "/api/v1/users/99/wardrobe/items", http.StatusNotFound, 0},
		{"bad user id", "/api/v1/users/abc/wardrobe/items", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestServer(t)
			rec := ts.do(t, http.MethodGet, tt.path, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var data struct {
				Items []models.ClothingItem `json:"items"`
				Count int                   `json:"count"`
			}
			decodeData(t, decodeEnvelope(t, rec), &data)
			if data.Items == nil {
				t.Error("items decoded as null, want a list")
			}
			if data.Count != tt.wantCount || len(data.Items) != tt.wantCount {
				t.Errorf("count = %d (%d items), want %d", data.Count, len(data.Items), tt.wantCount)
			}
		})
	}
}

func TestAddWardrobeItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "created",
			path:     "/api/v1/users/2/wardrobe/items",
			body:     `{"name":"  Navy blazer ","category":"outerwear","color":"navy","style":"business"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing name",
			path:     "/api/v1/users/2/wardrobe/items",
			body:     `{"category":"top"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  ErrCodeValidation,
		},
		{
			name:     "unknown category",
			path:     "/api/v1/users/2/wardrobe/items",
			body:     `{"name":"Cape","category":"cape"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  ErrCodeValidation,
		},
		{
			name:     "bad image url",
			path:     "/api/v1/users/2/wardrobe/items",
			body:     `{"name":"Tee","category":"top","image_url":"not a url"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  ErrCodeValidation,
		},
		{
			name:     "empty body",
			path:     "/api/v1/users/2/wardrobe/items",
			body:     "",
			wantCode: http.StatusBadRequest,
			wantErr:  ErrCodeInvalidBody,
		},
		{
			name:     "unknown user",
			path:     "/api/v1/users/99/wardrobe/items",
			body:     `{"name":"Tee","category":"top"}`,
			wantCode: http.StatusNotFound,
			wantErr:  ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestServer(t)
			rec := ts.do(t, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if tt.wantErr != "" {
				if env.Error == nil || env.Error.Code != tt.wantErr {
					t.Errorf("error = %+v, want %s", env.Error, tt.wantErr)
				}
				return
			}

			var data itemData
			decodeData(t, env, &data)
			if data.Item.ID == 0 || data.Item.UserID != 2 {
				t.Errorf("item = %+v, want an assigned ID owned by user 2", data.Item)
			}
			if data.Item.Name != "Navy blazer" {
				t.Errorf("name = %q, want trimmed %q", data.Item.Name, "Navy blazer")
			}
			if got := len(ts.wardrobe.users[2]); got != 1 {
				t.Errorf("stored items = %d, want 1", got)
			}
		})
	}
}

func TestUpdateWardrobeItem(t *testing.T) {
	t.Parallel()

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		rec := ts.do(t, http.MethodPut, "/api/v1/users/1/wardrobe/items/1", `{"color":"blue","pattern":""}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		var data itemData
		decodeData(t, decodeEnvelope(t, rec), &data)
		if data.Item.Color != "blue" {
			t.Errorf("color = %q, want blue", data.Item.Color)
		}
		if data.Item.Name != "White oxford shirt" || data.Item.Style != "business" {
			t.Errorf("item = %+v, want name and style unchanged", data.Item)
		}
		if stored := ts.wardrobe.users[1][0]; stored.Color != "blue" {
			t.Errorf("stored color = %q, want blue", stored.Color)
		}
	})

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"blank name", "/api/v1/users/1/wardrobe/items/1", `{"name":"   "}`, http.StatusBadRequest, ErrCodeValidation},
		{"bad category", "/api/v1/users/1/wardrobe/items/1", `{"category":"hat"}`, http.StatusBadRequest, ErrCodeValidation},
		{"other user's item", "/api/v1/users/2/wardrobe/items/1", `{"color":"red"}`, http.StatusNotFound, ErrCodeNotFound},
		{"missing item", "/api/v1/users/1/wardrobe/items/42", `{"color":"red"}`, http.StatusNotFound, ErrCodeNotFound},
		{"bad item id", "/api/v1/users/1/wardrobe/items/0", `{"color":"red"}`, http.StatusBadRequest, ErrCodeInvalidItemID},
		{"malformed body", "/api/v1/users/1/wardrobe/items/1", `{"color":`, http.StatusBadRequest, ErrCodeInvalidBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestServer(t)
			rec := ts.do(t, http.MethodPut, tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantErr)
			}
			if stored := ts.wardrobe.users[1][0]; stored.Color != "white" || stored.Category != models.CategoryTop {
				t.Errorf("stored item changed on failed update: %+v", stored)
			}
		})
	}
}

func TestDeleteWardrobeItem(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodDelete, "/api/v1/users/2/wardrobe/items/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete status = %d, want 404", rec.Code)
	}

	rec = ts.do(t, http.MethodDelete, "/api/v1/users/1/wardrobe/items/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var data struct {
		Deleted bool  `json:"deleted"`
		ID      int64 `json:"id"`
	}
	decodeData(t, decodeEnvelope(t, rec), &data)
	if !data.Deleted || data.ID != 1 {
		t.Errorf("data = %+v, want deleted item 1", data)
	}
	if got := len(ts.wardrobe.users[1]); got != 0 {
		t.Errorf("stored items = %d, want 0", got)
	}

	rec = ts.do(t, http.MethodDelete, "/api/v1/users/1/wardrobe/items/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestWardrobeItems_StoreError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/users/1/wardrobe/items", ""},
		{http.MethodPost, "/api/v1/users/1/wardrobe/items", `{"name":"Tee","category":"top"}`},
		{http.MethodPut, "/api/v1/users/1/wardrobe/items/1", `{"color":"red"}`},
		{http.MethodDelete, "/api/v1/users/1/wardrobe/items/1", ""},
		{http.MethodGet, "/api/v1/users/1/profile", ""},
		{http.MethodPut, "/api/v1/users/1/profile", `{"age":30}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			t.Parallel()

			ts := newTestServer(t)
			ts.wardrobe.err = errBoom
			rec := ts.do(t, tt.method, tt.path, tt.body)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeDatabase {
				t.Errorf("error = %+v, want %s", env.Error, ErrCodeDatabase)
			}
		})
	}
}

func TestProfileEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("create then partial update", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)

		rec := ts.do(t, http.MethodGet, "/api/v1/users/1/profile", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("initial GET status = %d, want 404", rec.Code)
		}

		rec = ts.do(t, http.MethodPut, "/api/v1/users/1/profile",
			`{"gender":"female","age":31,"preferred_styles":["business"]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("create status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		var created profileData
		decodeData(t, decodeEnvelope(t, rec), &created)
		if created.Profile.UserID != 1 || created.Profile.Age != 31 {
			t.Errorf("profile = %+v, want user 1 aged 31", created.Profile)
		}
		if created.Profile.PreferredColors == nil {
			t.Error("preferred_colors decoded as null, want an empty list")
		}

		rec = ts.do(t, http.MethodPut, "/api/v1/users/1/profile", `{"preferred_colors":["navy","white"]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("update status = %d, want 200", rec.Code)
		}

		rec = ts.do(t, http.MethodGet, "/api/v1/users/1/profile", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET status = %d, want 200", rec.Code)
		}
		var got profileData
		decodeData(t, decodeEnvelope(t, rec), &got)
		if got.Profile.Gender != "female" || got.Profile.Age != 31 {
			t.Errorf("profile = %+v, want gender and age kept", got.Profile)
		}
		if len(got.Profile.PreferredStyles) != 1 || len(got.Profile.PreferredColors) != 2 {
			t.Errorf("profile = %+v, want 1 style and 2 colors", got.Profile)
		}
	})

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"negative age", "/api/v1/users/1/profile", `{"age":-1}`, http.StatusBadRequest, ErrCodeValidation},
		{"blank color", "/api/v1/users/1/profile", `{"preferred_colors":["navy"," "]}`, http.StatusBadRequest, ErrCodeValidation},
		{"empty body", "/api/v1/users/1/profile", "", http.StatusBadRequest, ErrCodeInvalidBody},
		{"unknown user", "/api/v1/users/99/profile", `{"age":20}`, http.StatusNotFound, ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestServer(t)
			rec := ts.do(t, http.MethodPut, tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantErr)
			}
			if len(ts.wardrobe.profiles) != 0 {
				t.Errorf("profiles stored on failed update: %v", ts.wardrobe.profiles)
			}
		})
	}
}
