package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// fixedNow pins the handler clock so date-defaulting and window math are
// deterministic.
func fixedNow() time.Time { return testNow }

// newTestRouter builds a router with the real routes but a stub auth layer
// that injects a fixed user_id, and a nil DB pool. Only requests that fail
// validation before any query are exercised here — everything else needs a
// live database.
func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	})
	api.GET("/weight-log", h.getWeightLog)
	api.POST("/weight-log", h.upsertWeightEntry)
	api.GET("/calorie-log", h.getCalorieHistory)
	api.POST("/calorie-log/meals", h.createMealEntry)
	api.GET("/tdee/adjustment", h.getTDEEAdjustment)

	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

/* ─── Query param validation ─────────────────────────────────────────── */

// TestDaysParamValidation verifies the ?days= guard on both history endpoints.
func TestDaysParamValidation(t *testing.T) {
	router := newTestRouter(&Handler{now: fixedNow})

	cases := []struct {
		name string
		path string
	}{
		{"weight log non-numeric", "/api/weight-log?days=abc"},
		{"weight log zero", "/api/weight-log?days=0"},
		{"weight log negative", "/api/weight-log?days=-7"},
		{"weight log too large", "/api/weight-log?days=400"},
		{"calorie log non-numeric", "/api/calorie-log?days=xyz"},
		{"calorie log too large", "/api/calorie-log?days=9999"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, tc.path, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), "days must be") {
				t.Errorf("body = %q, want days validation message", w.Body.String())
			}
		})
	}
}

/* ─── Weight log validation ──────────────────────────────────────────── */

// TestUpsertWeightEntryValidation verifies request-body guards fire before any
// database access.
func TestUpsertWeightEntryValidation(t *testing.T) {
	router := newTestRouter(&Handler{now: fixedNow})

	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed json", `{`, "invalid request body"},
		{"bad date", `{"date": "06/15/2026", "weight_lbs": 180}`, "invalid date"},
		{"zero weight", `{"date": "2026-06-15", "weight_lbs": 0}`, "weight_lbs must be"},
		{"negative weight", `{"date": "2026-06-15", "weight_lbs": -5}`, "weight_lbs must be"},
		{"absurd weight", `{"date": "2026-06-15", "weight_lbs": 10000}`, "weight_lbs must be"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/weight-log", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.wantMsg) {
				t.Errorf("body = %q, want %q", w.Body.String(), tc.wantMsg)
			}
		})
	}
}

/* ─── Meal entry validation ──────────────────────────────────────────── */

// TestCreateMealEntryValidation verifies the meal-type and calories guards.
func TestCreateMealEntryValidation(t *testing.T) {
	router := newTestRouter(&Handler{now: fixedNow})

	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"unknown meal type", `{"meal": "brunch", "calories": 500}`, "meal must be one of"},
		{"missing calories", `{"meal": "lunch"}`, "calories is required"},
		{"negative calories", `{"meal": "dinner", "calories": -100}`, "calories is required"},
		{"bad date", `{"meal": "snack", "calories": 200, "date": "yesterday"}`, "invalid date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/calorie-log/meals", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.wantMsg) {
				t.Errorf("body = %q, want %q", w.Body.String(), tc.wantMsg)
			}
		})
	}
}

/* ─── Adjustment param validation ────────────────────────────────────── */

// TestTDEEAdjustmentParamValidation verifies that explicit goal/tier query
// params are rejected up front, before the engine snapshot is loaded.
func TestTDEEAdjustmentParamValidation(t *testing.T) {
	router := newTestRouter(&Handler{now: fixedNow})

	cases := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"bogus goal", "/api/tdee/adjustment?goal=shred", "goal must be one of"},
		{"bogus tier", "/api/tdee/adjustment?tier=extreme", "tier must be one of"},
		{"bogus both, goal checked first", "/api/tdee/adjustment?goal=shred&tier=extreme", "goal must be one of"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, tc.path, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.wantMsg) {
				t.Errorf("body = %q, want %q", w.Body.String(), tc.wantMsg)
			}
		})
	}
}
