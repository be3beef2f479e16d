// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/database"
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/recommend"
)

// fakeRecommender returns a canned result and remembers the last call.
type fakeRecommender struct {
	mu      sync.Mutex
	result  *recommend.Result
	calls   int
	lastCtx recommend.Context
	lastUID int64
}

func (f *fakeRecommender) Generate(_ context.Context, userID int64, req recommend.Context) *recommend.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastUID = userID
	f.lastCtx = req
	return f.result
}

// fakeHistory is an in-memory HistoryStore.
type fakeHistory struct {
	mu          sync.Mutex
	saveOutcome *models.SaveOutcome
	saved       []*recommend.Result
	records     []models.HistoryView
	lastLimit   int
	feedbackErr error
}

func (f *fakeHistory) Save(_ context.Context, _ int64, result *recommend.Result) models.SaveOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, result)
	if f.saveOutcome != nil {
		return *f.saveOutcome
	}
	id := int64(len(f.saved))
	now := time.Now().UTC()
	return models.SaveOutcome{HistoryID: &id, Status: models.SaveStatusSuccess, SavedAt: &now, Message: "saved"}
}

func (f *fakeHistory) Load(_ context.Context, _ int64, limit int) []models.HistoryView {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.records == nil {
		return []models.HistoryView{}
	}
	return f.records
}

func (f *fakeHistory) RecordFeedback(context.Context, int64, int64, models.Feedback, string) error {
	return f.feedbackErr
}

// fakeWardrobe is an in-memory WardrobeStore keyed by user. It reports
// unknown users and items with the database sentinels.
type fakeWardrobe struct {
	users    map[int64][]models.ClothingItem
	profiles map[int64]*models.UserProfile
	nextID   int64
	err      error
}

func (f *fakeWardrobe) UserExists(_ context.Context, userID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.users[userID]
	return ok, nil
}

func (f *fakeWardrobe) GetWardrobe(_ context.Context, userID int64) ([]models.ClothingItem, error) {
	return f.users[userID], nil
}

func (f *fakeWardrobe) find(userID, itemID int64) int {
	for i, item := range f.users[userID] {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (f *fakeWardrobe) GetClothingItem(_ context.Context, userID, itemID int64) (*models.ClothingItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	i := f.find(userID, itemID)
	if i < 0 {
		return nil, database.ErrItemNotFound
	}
	item := f.users[userID][i]
	return &item, nil
}

func (f *fakeWardrobe) AddClothingItem(_ context.Context, item *models.ClothingItem) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[item.UserID]; !ok {
		return database.ErrUserNotFound
	}
	f.nextID++
	item.ID = 100 + f.nextID
	item.CreatedAt = time.Now().UTC()
	f.users[item.UserID] = append(f.users[item.UserID], *item)
	return nil
}

func (f *fakeWardrobe) UpdateClothingItem(_ context.Context, item *models.ClothingItem) error {
	if f.err != nil {
		return f.err
	}
	i := f.find(item.UserID, item.ID)
	if i < 0 {
		return database.ErrItemNotFound
	}
	f.users[item.UserID][i] = *item
	return nil
}

func (f *fakeWardrobe) DeleteClothingItem(_ context.Context, userID, itemID int64) error {
	if f.err != nil {
		return f.err
	}
	i := f.find(userID, itemID)
	if i < 0 {
		return database.ErrItemNotFound
	}
	items := f.users[userID]
	f.users[userID] = append(items[:i:i], items[i+1:]...)
	return nil
}

func (f *fakeWardrobe) GetUserProfile(_ context.Context, userID int64) (*models.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeWardrobe) UpsertUserProfile(_ context.Context, profile *models.UserProfile) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[profile.UserID]; !ok {
		return database.ErrUserNotFound
	}
	if f.profiles == nil {
		f.profiles = make(map[int64]*models.UserProfile)
	}
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func successResult() *recommend.Result {
	now := time.Now().UTC()
	return &recommend.Result{
		Status: recommend.StatusSuccess,
		Items: []models.ClothingItem{
			{ID: 1, Name: "White oxford shirt", Category: models.CategoryTop},
			{ID: 4, Name: "Black tailored trousers", Category: models.CategoryBottom},
		},
		Rationale:     "suits business",
		Confidence:    0.9,
		StyleAnalysis: map[string]string{"dominant_style": "business"},
		Context:       recommend.ContextEcho{Occasion: "business", Weather: "sunny", Season: "spring", Timestamp: &now},
		Total:         2,
	}
}

func failureResult(code recommend.ErrorCode) *recommend.Result {
	return &recommend.Result{
		Status:        recommend.StatusError,
		Items:         []models.ClothingItem{},
		StyleAnalysis: map[string]string{},
		Error:         "failed",
		ErrorCode:     code,
	}
}

type testServer struct {
	handler     http.Handler
	recommender *fakeRecommender
	history     *fakeHistory
	wardrobe    *fakeWardrobe
}

func newTestServer(t *testing.T, pingers ...Pinger) *testServer {
	t.Helper()

	ts := &testServer{
		recommender: &fakeRecommender{result: successResult()},
		history:     &fakeHistory{},
		wardrobe: &fakeWardrobe{users: map[int64][]models.ClothingItem{
			1: {{ID: 1, UserID: 1, Name: "White oxford shirt", Category: models.CategoryTop, Color: "white", Style: "business"}},
			2: {},
		}},
	}
	h := NewHandler(ts.recommender, ts.history, ts.wardrobe, nil, pingers...)
	ts.handler = NewRouter(h, nil).SetupChi()
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.APIResponse with raw data for per-test decoding.
type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()

	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("Failed to decode data %q: %v", string(env.Data), err)
	}
}

var errBoom = errors.New("boom")
