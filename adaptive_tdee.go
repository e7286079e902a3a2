package main

import (
	"fmt"
	"math"
	"time"
)

// Engine tunables. Every inferred constant lives here so changing the window,
// the confidence thresholds, or the caloric-density assumption is a one-line
// edit — the algorithm files only reference these names.
const (
	// windowDays bounds the trailing snapshot the engine reads. Four weeks
	// captures several weekly cycles without dragging in stale metabolism.
	windowDays = 28

	// minDaysForCalculation is the minimum number of weight+calorie day-pairs
	// before the adaptive estimate is trusted at all. Two weeks captures two
	// weekends of logging habits and enough weigh-ins for a stable slope.
	minDaysForCalculation = 14

	// optimalDaysOfData is where the days component of the confidence score
	// stops growing — history past a month adds little signal.
	optimalDaysOfData = 28

	// minTrendEntries is the fewest distinct weigh-in dates a slope can be
	// fitted through without just connecting noise.
	minTrendEntries = 3

	// trendMaintainThreshold (lbs/week): weekly changes inside this deadband
	// classify as maintaining.
	trendMaintainThreshold = 0.1

	// caloriesPerPound is the caloric density of a pound of body mass.
	// Weights are tracked in lbs throughout, so the lb constant is used
	// rather than 7700 kcal/kg.
	caloriesPerPound = 3500.0

	// lbsPerKG converts stored lbs to kg for Mifflin-St Jeor.
	lbsPerKG = 2.20462

	// minBMR floors the formula estimator so malformed-but-plausible profiles
	// never propagate nonsensical energy values.
	minBMR = 800

	// minTargetCalories is the safety floor for recommended intake.
	minTargetCalories = 1200

	// Confidence bucket boundaries.
	confidenceHighMin   = 75
	confidenceMediumMin = 40
)

// calculateAdaptiveTDEE infers the user's true daily energy expenditure from
// their logged weight trajectory and calorie intake, falling back to the
// Mifflin-St Jeor baseline whenever the data is too sparse to trust.
//
// Pure function: the caller supplies a fresh snapshot and "now" on every
// invocation, results are deterministic given identical inputs, and nothing
// is cached engine-side. Data sparsity is a first-class result state
// (NeedsMoreData), never an error; errors are reserved for malformed input.
func calculateAdaptiveTDEE(weights []weightEntry, calories []calorieDay, p *userProfile, now time.Time) (tdeeResult, error) {
	_, formulaTDEE, err := computeFormulaTDEE(p, now)
	if err != nil {
		return tdeeResult{}, err
	}

	ws := filterWeightsToWindow(weights, now)
	cs := dedupeCaloriesByDate(filterCaloriesToWindow(calories, now))
	for _, w := range ws {
		if w.WeightLBS <= 0 {
			return tdeeResult{}, fmt.Errorf("weight entry on %s has non-positive weight", w.Date.Format("2006-01-02"))
		}
	}
	for _, c := range cs {
		if c.Calories < 0 {
			return tdeeResult{}, fmt.Errorf("calorie entry on %s has negative calories", c.Date.Format("2006-01-02"))
		}
	}

	fit, hasTrend := extractWeightTrend(ws)
	days := pairedDays(ws, cs)
	conf := computeConfidence(days, fit.ResidualStdDev)

	r := tdeeResult{
		FormulaTDEE:      formulaTDEE,
		DaysOfData:       days,
		Confidence:       conf.Bucket,
		ConfidenceScore:  conf.Score,
		NeedsMoreData:    conf.NeedsMoreData,
		MinDaysRemaining: conf.MinDaysRemaining,
		WeightTrend:      "maintaining",
	}
	if hasTrend {
		r.WeightTrend = fit.Trend
		r.AvgWeeklyChange = round2(fit.AvgWeeklyChange)
	}

	if conf.NeedsMoreData {
		// Honest fallback: the formula baseline is the estimate until enough
		// day-pairs accumulate. The solver must not run on thin data.
		r.AdaptiveTDEE = formulaTDEE
	} else {
		r.AdaptiveTDEE = solveEnergyBalance(avgDailyIntake(cs), fit.AvgWeeklyChange)
		r.Variance = round1(float64(r.AdaptiveTDEE-formulaTDEE) / float64(formulaTDEE) * 100)
	}

	r.Recommendation = generateRecommendation(&r)
	return r, nil
}

// solveEnergyBalance back-solves expenditure from observed intake and weight
// change: a weekly change of avgWeeklyChange lbs implies a daily surplus or
// deficit of avgWeeklyChange×3500/7 kcal, so TDEE = intake − that delta.
// Losing weight makes the delta negative and TDEE exceed intake.
func solveEnergyBalance(avgDailyIntake, avgWeeklyChange float64) int {
	dailyDeltaKcal := avgWeeklyChange * caloriesPerPound / 7
	return int(math.Round(avgDailyIntake - dailyDeltaKcal))
}

// avgDailyIntake is the mean of the per-day calorie totals. Callers guarantee
// at least one entry.
func avgDailyIntake(cs []calorieDay) float64 {
	var sum int
	for _, c := range cs {
		sum += c.Calories
	}
	return float64(sum) / float64(len(cs))
}

// pairedDays counts dates with both a weigh-in and logged intake — the
// DaysOfData figure the confidence model gates on. A day with only one side
// logged contributes nothing to the energy balance.
func pairedDays(ws []weightEntry, cs []calorieDay) int {
	calorieDates := make(map[string]bool, len(cs))
	for _, c := range cs {
		calorieDates[c.Date.Format("2006-01-02")] = true
	}
	seen := make(map[string]bool, len(ws))
	n := 0
	for _, w := range ws {
		d := w.Date.Format("2006-01-02")
		if calorieDates[d] && !seen[d] {
			seen[d] = true
			n++
		}
	}
	return n
}

/* ─── Window filtering ───────────────────────────────────────────────── */

// windowCutoff returns the earliest date (inclusive) inside the trailing window.
func windowCutoff(now time.Time) time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -(windowDays - 1))
}

func filterWeightsToWindow(entries []weightEntry, now time.Time) []weightEntry {
	cutoff := windowCutoff(now)
	out := make([]weightEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Date.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

func filterCaloriesToWindow(entries []calorieDay, now time.Time) []calorieDay {
	cutoff := windowCutoff(now)
	out := make([]calorieDay, 0, len(entries))
	for _, e := range entries {
		if !e.Date.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// dedupeCaloriesByDate collapses rows sharing a date, latest write wins.
// A safety net — the GROUP BY history query already yields one row per day.
func dedupeCaloriesByDate(entries []calorieDay) []calorieDay {
	byDate := make(map[string]calorieDay, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		d := e.Date.Format("2006-01-02")
		if _, seen := byDate[d]; !seen {
			order = append(order, d)
		}
		byDate[d] = e
	}
	out := make([]calorieDay, 0, len(byDate))
	for _, d := range order {
		out = append(out, byDate[d])
	}
	return out
}

/* ─── Rounding helpers ───────────────────────────────────────────────── */

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
