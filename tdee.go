package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// loadEngineSnapshot fetches the three inputs the engine needs: the trailing
// weight window, the per-day calorie rollups, and the user's profile. The
// snapshot is re-read on every call — results are never cached, so the engine
// stays a pure function of fresh data.
func (h *Handler) loadEngineSnapshot(c *gin.Context, userID int) ([]weightEntry, []calorieDay, userProfile, bool) {
	start := windowStart(h.now(), windowDays)

	weights, err := queryMany[weightEntry](h.db, c,
		`SELECT * FROM weight_log
		 WHERE user_id = @userID AND date >= @start
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return nil, nil, userProfile{}, false
	}

	calories, err := queryMany[calorieDay](h.db, c,
		`SELECT date, SUM(calories) AS calories, COUNT(*) AS meals
		 FROM calorie_log_meals
		 WHERE user_id = @userID AND date >= @start
		 GROUP BY date
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch calorie history")
		return nil, nil, userProfile{}, false
	}

	profile, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profile WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return nil, nil, userProfile{}, false
	}

	return weights, calories, profile, true
}

// getAdaptiveTDEE runs the engine over a fresh snapshot and returns the full
// result. GET /api/tdee. An incomplete profile is a 400 (the formula baseline
// cannot be computed without body stats); sparse logs are not an error — they
// come back as needs_more_data with the formula fallback.
func (h *Handler) getAdaptiveTDEE(c *gin.Context) {
	userID := c.GetInt("user_id")

	weights, calories, profile, ok := h.loadEngineSnapshot(c, userID)
	if !ok {
		return
	}

	result, err := calculateAdaptiveTDEE(weights, calories, &profile, h.now())
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// getTDEEAdjustment runs the engine and derives a goal-aware calorie target
// from its estimate. GET /api/tdee/adjustment?goal=&tier= — both params
// optional, defaulting to the goal and tier stored on the profile.
func (h *Handler) getTDEEAdjustment(c *gin.Context) {
	userID := c.GetInt("user_id")

	// Validate explicit params up front so a typo'd goal fails fast with a
	// clear message instead of a profile-dependent one.
	goal := c.Query("goal")
	if goal != "" {
		if _, ok := goalAdjustments[goal]; !ok {
			apiError(c, http.StatusBadRequest, "goal must be one of: fat_loss, muscle_gain, maintain")
			return
		}
	}
	tier := c.Query("tier")
	if tier != "" {
		if _, ok := goalAdjustments["maintain"][tier]; !ok {
			apiError(c, http.StatusBadRequest, "tier must be one of: conservative, moderate, aggressive")
			return
		}
	}

	weights, calories, profile, ok := h.loadEngineSnapshot(c, userID)
	if !ok {
		return
	}
	if goal == "" {
		goal = profile.Goal
	}
	if tier == "" {
		tier = profile.Tier
	}

	result, err := calculateAdaptiveTDEE(weights, calories, &profile, h.now())
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	adjustment, err := getCalorieAdjustment(result.AdaptiveTDEE, goal, tier)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, adjustmentResponse{
		TDEE:       result,
		Goal:       goal,
		Tier:       tier,
		Adjustment: adjustment,
	})
}
