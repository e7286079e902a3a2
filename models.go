package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// weightEntry maps to the weight_log table. At most one row per (user_id, date);
// the ON CONFLICT upsert in upsertWeightEntry means the latest write wins.
type weightEntry struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	WeightLBS float64    `json:"weight_lbs" db:"weight_lbs"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// mealEntry maps to calorie_log_meals. Individual logged meals; the engine
// never sees these directly — it consumes per-day calorieDay rollups.
type mealEntry struct {
	ID          int        `json:"id" db:"id"`
	UserID      int        `json:"user_id" db:"user_id"`
	Date        DateOnly   `json:"date" db:"date"`
	Meal        string     `json:"meal" db:"meal"`
	Description string     `json:"description" db:"description"`
	Calories    int        `json:"calories" db:"calories"`
	CreatedAt   *time.Time `json:"created_at" db:"created_at"`
}

// calorieDay is one day's total intake: the shape of each row returned by the
// calorie-history GROUP BY query, and the calorie-side input to the engine.
type calorieDay struct {
	Date     DateOnly `json:"date" db:"date"`
	Calories int      `json:"calories" db:"calories"`
	Meals    int      `json:"meals" db:"meals"`
}

// userProfile maps to the user_profile table. One row per user with the body
// stats the formula estimator needs plus the stored goal/tier defaults.
// Profile fields are nullable; zero-knowledge rows still work.
type userProfile struct {
	UserID        int       `json:"user_id"        db:"user_id"`
	Sex           *string   `json:"sex"            db:"sex"`
	DateOfBirth   *DateOnly `json:"date_of_birth"  db:"date_of_birth"`
	HeightCM      *float64  `json:"height_cm"      db:"height_cm"`
	WeightLBS     *float64  `json:"weight_lbs"     db:"weight_lbs"`
	ActivityLevel *string   `json:"activity_level" db:"activity_level"`
	Goal          string    `json:"goal"           db:"goal"`
	Tier          string    `json:"tier"           db:"tier"`
	Units         string    `json:"units"          db:"units"`

	// Computed fields — populated server-side from the profile; not stored.
	// db:"-" tells RowToStructByName to skip these during scanning.
	ComputedBMR  *int `json:"computed_bmr,omitempty"  db:"-"`
	ComputedTDEE *int `json:"computed_tdee,omitempty" db:"-"`
}

// patchProfileRequest is the request body for PATCH /api/profile.
// All fields are pointers — only non-nil fields get written to the database.
type patchProfileRequest struct {
	Sex           *string  `json:"sex"`
	DateOfBirth   *string  `json:"date_of_birth"` // YYYY-MM-DD string, stored as date
	HeightCM      *float64 `json:"height_cm"`
	WeightLBS     *float64 `json:"weight_lbs"`
	ActivityLevel *string  `json:"activity_level"`
	Goal          *string  `json:"goal"`
	Tier          *string  `json:"tier"`
	Units         *string  `json:"units"`
}

/* ─── Engine output structs ──────────────────────────────────────────── */

// tdeeResult is the engine's sole output: the adaptive estimate alongside the
// formula baseline, plus the confidence gate that decides whether the adaptive
// number is usable at all. Never cached — every call recomputes from the
// supplied snapshot.
type tdeeResult struct {
	AdaptiveTDEE     int     `json:"adaptive_tdee"`
	FormulaTDEE      int     `json:"formula_tdee"`
	Confidence       string  `json:"confidence"` // low | medium | high
	ConfidenceScore  int     `json:"confidence_score"`
	NeedsMoreData    bool    `json:"needs_more_data"`
	MinDaysRemaining int     `json:"min_days_remaining"`
	DaysOfData       int     `json:"days_of_data"`
	WeightTrend      string  `json:"weight_trend"`      // losing | gaining | maintaining
	AvgWeeklyChange  float64 `json:"avg_weekly_change"` // lbs/week, signed
	Variance         float64 `json:"variance"`          // (adaptive-formula)/formula × 100
	Recommendation   string  `json:"recommendation"`
}

// calorieAdjustment is the goal-aware calorie target derived from a tdeeResult.
type calorieAdjustment struct {
	TargetCalories int `json:"target_calories"`
	Adjustment     int `json:"adjustment"`
}

// adjustmentResponse is the response shape for GET /api/tdee/adjustment:
// the full engine result plus the adjustment computed from it.
type adjustmentResponse struct {
	TDEE       tdeeResult        `json:"tdee"`
	Goal       string            `json:"goal"`
	Tier       string            `json:"tier"`
	Adjustment calorieAdjustment `json:"adjustment"`
}
