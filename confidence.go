package main

// confidenceRating is the confidence model's output: a 0-100 score, its
// low/medium/high bucket, and the needs-more-data gate that decides whether
// the adaptive estimate is usable at all.
type confidenceRating struct {
	Score            int
	Bucket           string // low | medium | high
	NeedsMoreData    bool
	MinDaysRemaining int
}

// computeConfidence scores estimate reliability from the number of valid
// weight+calorie day-pairs and the dispersion of weights around the fitted
// trend. Weight and intake logs are self-reported and sparse; naively
// trusting a two-day trend produces dangerously wrong calorie targets, so
// this gate is the primary safety mechanism of the whole engine.
//
// Score components once enough data exists:
//   - Days (40-60 points): 14 day-pairs = 40, rising linearly to 60 at 28
//     day-pairs, flat after — more history past a month buys little.
//   - Consistency (0-40 points): residual dispersion around the fitted
//     trend, bucketed; a tight fit means the user weighs in and logs
//     consistently enough for the energy balance to be trusted.
//
// Below minDaysForCalculation the score scales linearly with day-pairs and
// is capped just under the medium boundary, so a sparse window can never
// present as a trustworthy estimate.
func computeConfidence(daysOfData int, residualStdDev float64) confidenceRating {
	if daysOfData < minDaysForCalculation {
		score := daysOfData * 100 / minDaysForCalculation
		if score >= confidenceMediumMin {
			score = confidenceMediumMin - 1
		}
		return confidenceRating{
			Score:            score,
			Bucket:           "low",
			NeedsMoreData:    true,
			MinDaysRemaining: minDaysForCalculation - daysOfData,
		}
	}

	score := daysScore(daysOfData) + consistencyScore(residualStdDev)
	if score > 100 {
		score = 100
	}
	return confidenceRating{Score: score, Bucket: confidenceBucket(score)}
}

// daysScore maps day-pairs to 40-60 points with diminishing returns past
// optimalDaysOfData. Only called with daysOfData >= minDaysForCalculation.
func daysScore(daysOfData int) int {
	if daysOfData >= optimalDaysOfData {
		return 60
	}
	return 40 + (daysOfData-minDaysForCalculation)*20/(optimalDaysOfData-minDaysForCalculation)
}

// consistencyScore maps residual dispersion (lbs) to 0-40 points. Daily scale
// readings normally scatter 1-2 lbs from water weight alone; dispersion past
// ~4 lbs means the fitted trend says little about real tissue change.
func consistencyScore(residualStdDev float64) int {
	switch {
	case residualStdDev < 0.75:
		return 40
	case residualStdDev < 1.5:
		return 30
	case residualStdDev < 2.5:
		return 20
	case residualStdDev < 4.0:
		return 10
	default:
		return 0
	}
}

// confidenceBucket maps a 0-100 score to its coarse reliability label.
func confidenceBucket(score int) string {
	switch {
	case score >= confidenceHighMin:
		return "high"
	case score >= confidenceMediumMin:
		return "medium"
	default:
		return "low"
	}
}
