package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getProfile returns the user's body-stats profile. Computed formula fields
// (bmr, tdee) are populated when all profile fields are present.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profile WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	populateFormulaEstimate(&p, h.now())

	c.JSON(http.StatusOK, p)
}

// patchProfile updates only the provided profile fields.
// PATCH /api/profile. Uses pointer fields in the request body to distinguish
// "not provided" from zero — only non-nil fields get updated.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate enums before saving — an unknown activity level silently breaks
	// all future TDEE calculations with no visible error.
	if body.ActivityLevel != nil {
		if _, ok := activityMultipliers[*body.ActivityLevel]; !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, very, extra")
			return
		}
	}
	if body.Sex != nil && *body.Sex != "male" && *body.Sex != "female" {
		apiError(c, http.StatusBadRequest, "sex must be male or female")
		return
	}
	if body.Goal != nil {
		if _, ok := goalAdjustments[*body.Goal]; !ok {
			apiError(c, http.StatusBadRequest, "goal must be one of: fat_loss, muscle_gain, maintain")
			return
		}
	}
	if body.Tier != nil {
		if _, ok := goalAdjustments["maintain"][*body.Tier]; !ok {
			apiError(c, http.StatusBadRequest, "tier must be one of: conservative, moderate, aggressive")
			return
		}
	}
	if body.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *body.DateOfBirth); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date_of_birth, expected YYYY-MM-DD")
			return
		}
	}
	if body.Units != nil && *body.Units != "imperial" && *body.Units != "metric" {
		apiError(c, http.StatusBadRequest, "units must be imperial or metric")
		return
	}
	if body.HeightCM != nil && *body.HeightCM <= 0 {
		apiError(c, http.StatusBadRequest, "height_cm must be positive")
		return
	}
	if body.WeightLBS != nil && *body.WeightLBS <= 0 {
		apiError(c, http.StatusBadRequest, "weight_lbs must be positive")
		return
	}

	// Build SET clause dynamically — only update fields the client actually sent
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}

	if body.Sex != nil {
		setClauses = append(setClauses, "sex = @sex")
		args["sex"] = *body.Sex
	}
	if body.DateOfBirth != nil {
		setClauses = append(setClauses, "date_of_birth = @dateOfBirth")
		args["dateOfBirth"] = *body.DateOfBirth
	}
	if body.HeightCM != nil {
		setClauses = append(setClauses, "height_cm = @heightCM")
		args["heightCM"] = *body.HeightCM
	}
	if body.WeightLBS != nil {
		setClauses = append(setClauses, "weight_lbs = @weightLBS")
		args["weightLBS"] = *body.WeightLBS
	}
	if body.ActivityLevel != nil {
		setClauses = append(setClauses, "activity_level = @activityLevel")
		args["activityLevel"] = *body.ActivityLevel
	}
	if body.Goal != nil {
		setClauses = append(setClauses, "goal = @goal")
		args["goal"] = *body.Goal
	}
	if body.Tier != nil {
		setClauses = append(setClauses, "tier = @tier")
		args["tier"] = *body.Tier
	}
	if body.Units != nil {
		setClauses = append(setClauses, "units = @units")
		args["units"] = *body.Units
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := "UPDATE user_profile SET " +
		strings.Join(setClauses, ", ") +
		" WHERE user_id = @userID RETURNING *"

	p, err := queryOne[userProfile](h.db, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	populateFormulaEstimate(&p, h.now())

	c.JSON(http.StatusOK, p)
}
