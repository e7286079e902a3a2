package main

import (
	"fmt"
	"math"
	"time"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used for
// input validation in patchProfile.
var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"very":      1.725,
	"extra":     1.9,
}

// computeFormulaTDEE computes the population-formula baseline: BMR via
// Mifflin-St Jeor (sex-dependent constant) multiplied by the activity factor.
// Pure function of the profile and the injected "now" (age is derived from
// date of birth). Returns a descriptive error when a required field is
// missing or implausible; the caller decides how to surface it.
//
// BMR is floored at minBMR so a malformed-but-plausible profile (very low
// weight, tall frame) can never propagate a negative energy value downstream.
func computeFormulaTDEE(p *userProfile, now time.Time) (bmr, tdee int, err error) {
	if p.Sex == nil || p.DateOfBirth == nil || p.HeightCM == nil ||
		p.WeightLBS == nil || p.ActivityLevel == nil {
		return 0, 0, fmt.Errorf("profile incomplete: sex, date_of_birth, height_cm, weight_lbs and activity_level are required")
	}
	if *p.WeightLBS <= 0 {
		return 0, 0, fmt.Errorf("weight_lbs must be positive")
	}
	if *p.HeightCM <= 0 {
		return 0, 0, fmt.Errorf("height_cm must be positive")
	}

	// Age derived from date of birth against the injected clock.
	age := now.Year() - p.DateOfBirth.Year()
	if now.Before(p.DateOfBirth.AddDate(age, 0, 0)) {
		age--
	}
	// Guard against implausible ages (e.g. DOB in the future, or over 130 years ago)
	if age < 0 || age > 130 {
		return 0, 0, fmt.Errorf("date_of_birth yields implausible age %d", age)
	}

	// BMR via Mifflin-St Jeor: different constant for male vs female
	weightKG := *p.WeightLBS / lbsPerKG
	bmrF := 10*weightKG + 6.25**p.HeightCM - 5*float64(age)
	if *p.Sex == "male" {
		bmrF += 5
	} else {
		bmrF -= 161
	}
	if bmrF < minBMR {
		bmrF = minBMR
	}

	mult, found := activityMultipliers[*p.ActivityLevel]
	if !found {
		return 0, 0, fmt.Errorf("unknown activity_level %q", *p.ActivityLevel)
	}
	tdeeF := bmrF * mult

	// math.Round avoids systematic under-reporting from truncation.
	return int(math.Round(bmrF)), int(math.Round(tdeeF)), nil
}

// populateFormulaEstimate fills the computed-only fields on p from the body
// stats. No-ops if the profile is incomplete — a half-filled profile is the
// normal state for new users, not an error.
func populateFormulaEstimate(p *userProfile, now time.Time) {
	if bmr, tdee, err := computeFormulaTDEE(p, now); err == nil {
		p.ComputedBMR = &bmr
		p.ComputedTDEE = &tdee
	}
}
