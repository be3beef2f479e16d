// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/outfitter/internal/logging"
)

func TestHealthLive(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data map[string]interface{}
	decodeData(t, decodeEnvelope(t, rec), &data)
	if data["alive"] != true {
		t.Errorf("alive = %v, want true", data["alive"])
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingers    []Pinger
		wantStatus int
		wantBody   string
	}{
		{"all storage up", []Pinger{fakePinger{}, fakePinger{}}, http.StatusOK, "ready"},
		{"one storage down", []Pinger{fakePinger{}, fakePinger{err: errBoom}}, http.StatusServiceUnavailable, "not_ready"},
		{"no storage configured", nil, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestServer(t, tt.pingers...)
			rec := ts.do(t, http.MethodGet, "/api/v1/health/ready", "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env := decodeEnvelope(t, rec); env.Status != tt.wantBody {
				t.Errorf("status field = %q, want %q", env.Status, tt.wantBody)
			}
		})
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/health/live", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not set on response")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want caller's req-123", got)
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/users/1/recommendations/history", "")

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
		"Content-Type":           "application/json",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("ETag not set")
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route error = %+v", env.Error)
	}

	rec = ts.do(t, http.MethodDelete, "/api/v1/users/1/recommendations/history", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE status = %d, want 405", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.do(t, http.MethodGet, "/api/v1/users/1/recommendations/history", "")

	rec := ts.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
	if !strings.Contains(body, `/api/v1/users/{userID}/recommendations/history`) {
		t.Error("api request metric is not labeled with the route pattern")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	h := NewHandler(&fakeRecommender{result: successResult()}, &fakeHistory{}, &fakeWardrobe{}, nil)
	mw := NewChiMiddleware(&ChiMiddlewareConfig{CORSAllowedOrigins: []string{"https://app.example.com"}})
	handler := NewRouter(h, mw).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/users/1/recommendations/outfit", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/users/1/recommendations/outfit", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Access-Control-Allow-Origin = %q", got)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUserContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		wantID int64
		wantOK bool
	}{
		{"/users/42", 42, true},
		{"/users/abc", 0, false},
	}
	for _, tt := range tests {
		var gotID int64
		var gotOK bool
		r := chi.NewRouter()
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Use(UserContext)
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				gotID, gotOK = logging.UserIDFromContext(req.Context())
			})
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if gotID != tt.wantID || gotOK != tt.wantOK {
			t.Errorf("%s: user id = (%d, %v), want (%d, %v)", tt.path, gotID, gotOK, tt.wantID, tt.wantOK)
		}
	}
}
