package main

import (
	"math"
	"sort"
)

// weightTrendFit is the output of the trend extractor: a smoothed weekly rate
// of change plus the spread of the daily weights around the fitted line.
type weightTrendFit struct {
	AvgWeeklyChange float64 // lbs/week, signed
	Trend           string  // losing | gaining | maintaining
	ResidualStdDev  float64 // lbs, dispersion of entries around the fit
	Days            int     // distinct dated entries used
}

// extractWeightTrend fits a linear trend to a window of weight entries and
// classifies it. Returns ok=false when fewer than minTrendEntries distinct
// dates exist, or when the dates are so degenerate that a slope cannot be
// fitted — callers surface that upstream rather than guessing.
//
// Dedup here is a safety net: the weight_log upsert already enforces one row
// per (user_id, date), but the engine accepts arbitrary snapshots.
func extractWeightTrend(entries []weightEntry) (weightTrendFit, bool) {
	deduped := dedupeWeightsByDate(entries)
	if len(deduped) < minTrendEntries {
		return weightTrendFit{}, false
	}

	// Day-index x axis relative to the earliest entry, weight y axis.
	first := deduped[0].Date.Time
	xs := make([]float64, len(deduped))
	ys := make([]float64, len(deduped))
	for i, e := range deduped {
		xs[i] = e.Date.Sub(first).Hours() / 24.0
		ys[i] = e.WeightLBS
	}

	slope, intercept, ok := linearFit(xs, ys)
	if !ok {
		// Zero spread on the day axis: a slope would divide by ~0. Surface
		// "no trend" instead of propagating NaN into the solver.
		return weightTrendFit{}, false
	}

	fit := weightTrendFit{
		AvgWeeklyChange: slope * 7,
		ResidualStdDev:  residualStdDev(xs, ys, slope, intercept),
		Days:            len(deduped),
	}
	fit.Trend = classifyTrend(fit.AvgWeeklyChange)
	return fit, true
}

// classifyTrend buckets a weekly rate of change. The ±trendMaintainThreshold
// deadband absorbs daily scale noise (water weight) without masking genuine trends.
func classifyTrend(weeklyChange float64) string {
	switch {
	case weeklyChange < -trendMaintainThreshold:
		return "losing"
	case weeklyChange > trendMaintainThreshold:
		return "gaining"
	default:
		return "maintaining"
	}
}

// dedupeWeightsByDate collapses entries sharing a calendar date (latest write
// wins, i.e. later position in the input) and returns them sorted ascending.
func dedupeWeightsByDate(entries []weightEntry) []weightEntry {
	byDate := make(map[string]weightEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date.Format("2006-01-02")] = e
	}
	out := make([]weightEntry, 0, len(byDate))
	for _, e := range byDate {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Time.Before(out[j].Date.Time)
	})
	return out
}

// linearFit computes the ordinary-least-squares slope and intercept for
// y = slope*x + intercept. ok=false when the x values have no usable spread.
func linearFit(xs, ys []float64) (slope, intercept float64, ok bool) {
	n := float64(len(xs))
	if n == 0 {
		return 0, 0, false
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
	}

	denom := n*sumX2 - sumX*sumX
	if math.Abs(denom) < 1e-10 {
		return 0, 0, false
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}

// residualStdDev measures how far the observed weights scatter around the
// fitted line — the logging-noise input to the confidence model.
func residualStdDev(xs, ys []float64, slope, intercept float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sumSq float64
	for i := range xs {
		r := ys[i] - (slope*xs[i] + intercept)
		sumSq += r * r
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}
