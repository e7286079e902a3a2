package main

import "fmt"

/* ─── Calorie adjustment ─────────────────────────────────────────────── */

// goalAdjustments maps goal → tier → daily kcal adjustment. This is the
// single source of truth for valid goals and tiers — also used for input
// validation in patchProfile and the adjustment handler. Maintenance is zero
// at every tier so the tier choice never leaks into a maintain target.
var goalAdjustments = map[string]map[string]int{
	"fat_loss": {
		"conservative": -250,
		"moderate":     -500,
		"aggressive":   -750,
	},
	"muscle_gain": {
		"conservative": 200,
		"moderate":     300,
		"aggressive":   500,
	},
	"maintain": {
		"conservative": 0,
		"moderate":     0,
		"aggressive":   0,
	},
}

// getCalorieAdjustment turns a TDEE figure into a goal-aware calorie target.
// Deficits are clamped so the target never drops below minTargetCalories;
// when the TDEE itself is already under the floor no deficit is applied at
// all — cutting below an already-low expenditure is never safe guidance.
// The returned Adjustment always equals TargetCalories - tdee, including
// after clamping.
func getCalorieAdjustment(tdee int, goal, tier string) (calorieAdjustment, error) {
	tiers, ok := goalAdjustments[goal]
	if !ok {
		return calorieAdjustment{}, fmt.Errorf("goal must be one of: fat_loss, muscle_gain, maintain")
	}
	adj, ok := tiers[tier]
	if !ok {
		return calorieAdjustment{}, fmt.Errorf("tier must be one of: conservative, moderate, aggressive")
	}
	if tdee <= 0 {
		return calorieAdjustment{}, fmt.Errorf("tdee must be positive")
	}

	target := tdee + adj
	if adj < 0 && target < minTargetCalories {
		target = minTargetCalories
		if target > tdee {
			target = tdee
		}
	}

	return calorieAdjustment{TargetCalories: target, Adjustment: target - tdee}, nil
}

/* ─── Recommendation rule table ──────────────────────────────────────── */

// recommendationRule is one row of the insight decision table. Rules are
// evaluated in order and the first match wins, so earlier rules may assume
// everything above them failed to match.
type recommendationRule struct {
	name    string
	matches func(r *tdeeResult) bool
	message func(r *tdeeResult) string
}

// varianceNotable is the |variance| percentage above which the adaptive
// estimate is considered meaningfully different from the formula baseline.
const varianceNotable = 5.0

// recommendationRules keys the insight text on (needsMoreData, confidence,
// variance sign/magnitude, weight trend). An explicit table rather than
// string concatenation so every branch is independently testable.
var recommendationRules = []recommendationRule{
	{
		name: "needs_more_data",
		matches: func(r *tdeeResult) bool {
			return r.NeedsMoreData
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("Still learning your metabolism — log your weight and meals for %d more days to unlock an adaptive estimate. Using the formula baseline of %d kcal/day for now.",
				r.MinDaysRemaining, r.FormulaTDEE)
		},
	},
	{
		name: "high_above_formula_losing",
		matches: func(r *tdeeResult) bool {
			return r.Confidence == "high" && r.Variance >= varianceNotable && r.WeightTrend == "losing"
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("Your metabolism is running about %.0f%% higher than the formula predicts: you're losing %.1f lbs/week on this intake, so your true burn is around %d kcal/day.",
				r.Variance, -r.AvgWeeklyChange, r.AdaptiveTDEE)
		},
	},
	{
		name: "high_above_formula",
		matches: func(r *tdeeResult) bool {
			return r.Confidence == "high" && r.Variance >= varianceNotable
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("Your data shows you burn about %d kcal/day, %.0f%% above the formula estimate — trust the adaptive number when setting targets.",
				r.AdaptiveTDEE, r.Variance)
		},
	},
	{
		name: "high_below_formula_gaining",
		matches: func(r *tdeeResult) bool {
			return r.Confidence == "high" && r.Variance <= -varianceNotable && r.WeightTrend == "gaining"
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("You're gaining %.1f lbs/week at this intake — your real burn is about %d kcal/day, %.0f%% under the formula estimate. Plan targets from the adaptive number.",
				r.AvgWeeklyChange, r.AdaptiveTDEE, -r.Variance)
		},
	},
	{
		name: "high_below_formula",
		matches: func(r *tdeeResult) bool {
			return r.Confidence == "high" && r.Variance <= -varianceNotable
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("Your metabolism is running about %.0f%% below the formula prediction — your measured burn is %d kcal/day. Targets based on the formula would overshoot.",
				-r.Variance, r.AdaptiveTDEE)
		},
	},
	{
		name: "high_matches_formula",
		matches: func(r *tdeeResult) bool {
			return r.Confidence == "high"
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("Your measured burn of %d kcal/day closely matches the formula estimate — the population model fits you well.",
				r.AdaptiveTDEE)
		},
	},
	{
		name: "medium_losing",
		matches: func(r *tdeeResult) bool {
			return r.Confidence == "medium" && r.WeightTrend == "losing"
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("Early data puts your burn near %d kcal/day with weight trending down %.1f lbs/week. A couple more weeks of consistent logging will firm this up.",
				r.AdaptiveTDEE, -r.AvgWeeklyChange)
		},
	},
	{
		name: "medium_gaining",
		matches: func(r *tdeeResult) bool {
			return r.Confidence == "medium" && r.WeightTrend == "gaining"
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("Early data puts your burn near %d kcal/day with weight trending up %.1f lbs/week. A couple more weeks of consistent logging will firm this up.",
				r.AdaptiveTDEE, r.AvgWeeklyChange)
		},
	},
	{
		name: "medium_maintaining",
		matches: func(r *tdeeResult) bool {
			return r.Confidence == "medium"
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("Your weight has been steady, which suggests you burn close to what you eat — roughly %d kcal/day. Keep logging to tighten the estimate.",
				r.AdaptiveTDEE)
		},
	},
	{
		name: "low_confidence",
		matches: func(r *tdeeResult) bool {
			return true
		},
		message: func(r *tdeeResult) string {
			return fmt.Sprintf("Your logs are too inconsistent for a reliable adaptive estimate yet — weigh in and log meals daily. The formula baseline of %d kcal/day is the safer reference for now.",
				r.FormulaTDEE)
		},
	},
}

// generateRecommendation selects the first matching rule's message. The final
// catch-all rule guarantees a match.
func generateRecommendation(r *tdeeResult) string {
	for _, rule := range recommendationRules {
		if rule.matches(r) {
			return rule.message(r)
		}
	}
	return "" // unreachable: the last rule always matches
}
