package main

import (
	"strings"
	"testing"
)

/* ─── Calorie adjustment tests ───────────────────────────────────────── */

// TestGetCalorieAdjustment_Tiers verifies every goal/tier combination against
// the adjustment table.
func TestGetCalorieAdjustment_Tiers(t *testing.T) {
	const tdee = 2500
	cases := []struct {
		goal, tier string
		wantTarget int
	}{
		{"fat_loss", "conservative", 2250},
		{"fat_loss", "moderate", 2000},
		{"fat_loss", "aggressive", 1750},
		{"muscle_gain", "conservative", 2700},
		{"muscle_gain", "moderate", 2800},
		{"muscle_gain", "aggressive", 3000},
		{"maintain", "conservative", 2500},
		{"maintain", "moderate", 2500},
		{"maintain", "aggressive", 2500},
	}

	for _, tc := range cases {
		t.Run(tc.goal+"/"+tc.tier, func(t *testing.T) {
			got, err := getCalorieAdjustment(tdee, tc.goal, tc.tier)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.TargetCalories != tc.wantTarget {
				t.Errorf("target = %d, want %d", got.TargetCalories, tc.wantTarget)
			}
			if got.Adjustment != tc.wantTarget-tdee {
				t.Errorf("adjustment = %d, want %d", got.Adjustment, tc.wantTarget-tdee)
			}
		})
	}
}

// TestGetCalorieAdjustment_FloorClamp verifies deficit clamping at the minimum
// safe target: the deficit shrinks rather than pushing the target under 1200.
func TestGetCalorieAdjustment_FloorClamp(t *testing.T) {
	got, err := getCalorieAdjustment(1300, "fat_loss", "moderate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TargetCalories != 1200 {
		t.Errorf("target = %d, want clamped to 1200", got.TargetCalories)
	}
	if got.Adjustment != -100 {
		t.Errorf("adjustment = %d, want -100 after clamping", got.Adjustment)
	}
}

// TestGetCalorieAdjustment_TDEEUnderFloor verifies that when expenditure is
// already below the floor, a deficit goal produces no deficit at all.
func TestGetCalorieAdjustment_TDEEUnderFloor(t *testing.T) {
	got, err := getCalorieAdjustment(1100, "fat_loss", "aggressive")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TargetCalories != 1100 || got.Adjustment != 0 {
		t.Errorf("got target=%d adjustment=%d, want 1100/0 — never cut below expenditure under the floor",
			got.TargetCalories, got.Adjustment)
	}

	// Maintenance under the floor is untouched: the floor only clamps deficits.
	got, err = getCalorieAdjustment(1100, "maintain", "moderate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TargetCalories != 1100 || got.Adjustment != 0 {
		t.Errorf("maintain: got target=%d adjustment=%d, want 1100/0", got.TargetCalories, got.Adjustment)
	}

	// Surplus goals are untouched too.
	got, err = getCalorieAdjustment(1100, "muscle_gain", "moderate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TargetCalories != 1400 {
		t.Errorf("surplus target = %d, want 1400", got.TargetCalories)
	}
}

// TestGetCalorieAdjustment_Invalid verifies input validation.
func TestGetCalorieAdjustment_Invalid(t *testing.T) {
	cases := []struct {
		name       string
		tdee       int
		goal, tier string
	}{
		{"unknown goal", 2500, "bulk", "moderate"},
		{"unknown tier", 2500, "fat_loss", "extreme"},
		{"zero tdee", 0, "fat_loss", "moderate"},
		{"negative tdee", -100, "maintain", "moderate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := getCalorieAdjustment(tc.tdee, tc.goal, tc.tier); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

/* ─── Rule table tests ───────────────────────────────────────────────── */

// matchedRuleName runs the rule table the same way generateRecommendation does
// but reports which rule fired, so tests can assert routing rather than
// matching on message prose.
func matchedRuleName(r *tdeeResult) string {
	for _, rule := range recommendationRules {
		if rule.matches(r) {
			return rule.name
		}
	}
	return ""
}

// TestRecommendationRouting verifies that each result shape reaches the
// intended rule, including first-match precedence.
func TestRecommendationRouting(t *testing.T) {
	cases := []struct {
		name string
		r    tdeeResult
		want string
	}{
		{
			"needs more data wins over everything",
			tdeeResult{NeedsMoreData: true, Confidence: "high", Variance: 20, WeightTrend: "losing"},
			"needs_more_data",
		},
		{
			"high above formula while losing",
			tdeeResult{Confidence: "high", Variance: 8.5, WeightTrend: "losing", AvgWeeklyChange: -1.2},
			"high_above_formula_losing",
		},
		{
			"high above formula otherwise",
			tdeeResult{Confidence: "high", Variance: 8.5, WeightTrend: "maintaining"},
			"high_above_formula",
		},
		{
			"high below formula while gaining",
			tdeeResult{Confidence: "high", Variance: -7.0, WeightTrend: "gaining", AvgWeeklyChange: 0.8},
			"high_below_formula_gaining",
		},
		{
			"high below formula otherwise",
			tdeeResult{Confidence: "high", Variance: -7.0, WeightTrend: "maintaining"},
			"high_below_formula",
		},
		{
			"high within variance band",
			tdeeResult{Confidence: "high", Variance: 2.0, WeightTrend: "losing"},
			"high_matches_formula",
		},
		{
			"variance exactly at the notable boundary",
			tdeeResult{Confidence: "high", Variance: 5.0, WeightTrend: "maintaining"},
			"high_above_formula",
		},
		{
			"variance just inside the band",
			tdeeResult{Confidence: "high", Variance: 4.9, WeightTrend: "losing"},
			"high_matches_formula",
		},
		{
			"medium losing",
			tdeeResult{Confidence: "medium", Variance: 12.0, WeightTrend: "losing", AvgWeeklyChange: -0.9},
			"medium_losing",
		},
		{
			"medium gaining",
			tdeeResult{Confidence: "medium", WeightTrend: "gaining", AvgWeeklyChange: 0.5},
			"medium_gaining",
		},
		{
			"medium maintaining",
			tdeeResult{Confidence: "medium", WeightTrend: "maintaining"},
			"medium_maintaining",
		},
		{
			"low confidence catch-all",
			tdeeResult{Confidence: "low", WeightTrend: "losing", Variance: 30},
			"low_confidence",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchedRuleName(&tc.r); got != tc.want {
				t.Errorf("matched rule = %q, want %q", got, tc.want)
			}
			if generateRecommendation(&tc.r) == "" {
				t.Error("recommendation text is empty")
			}
		})
	}
}

// TestGenerateRecommendation_NeedsMoreDataText spot-checks that the gate
// message carries the countdown and the formula baseline.
func TestGenerateRecommendation_NeedsMoreDataText(t *testing.T) {
	r := tdeeResult{NeedsMoreData: true, MinDaysRemaining: 6, FormulaTDEE: 2450}
	msg := generateRecommendation(&r)
	if !strings.Contains(msg, "6 more days") {
		t.Errorf("message missing countdown: %q", msg)
	}
	if !strings.Contains(msg, "2450") {
		t.Errorf("message missing formula baseline: %q", msg)
	}
}
