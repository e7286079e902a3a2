package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validMealTypes is the set of allowed values for the meal column.
// Reject unknown values with 400 rather than letting the DB return a cryptic 500.
var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// getCalorieHistory returns per-day calorie totals and meal counts for a
// trailing window, oldest first. GET /api/calorie-log?days=N. This is also
// the calorie-side snapshot the engine consumes: the GROUP BY guarantees one
// row per day, so the engine's own dedup step is a safety net rather than the
// primary mechanism.
func (h *Handler) getCalorieHistory(c *gin.Context) {
	userID := c.GetInt("user_id")
	days, ok := parseDaysParam(c)
	if !ok {
		return
	}

	rows, err := queryMany[calorieDay](h.db, c,
		`SELECT date, SUM(calories) AS calories, COUNT(*) AS meals
		 FROM calorie_log_meals
		 WHERE user_id = @userID AND date >= @start
		 GROUP BY date
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": windowStart(h.now(), days)})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch calorie history")
		return
	}
	if rows == nil {
		rows = []calorieDay{}
	}

	c.JSON(http.StatusOK, rows)
}

// createMealEntry logs a meal. POST /api/calorie-log/meals.
// Body: { "date"?, "meal", "description"?, "calories" }. Date defaults to today.
func (h *Handler) createMealEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Date        string `json:"date"`
		Meal        string `json:"meal"`
		Description string `json:"description"`
		Calories    *int   `json:"calories"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validMealTypes[body.Meal] {
		apiError(c, http.StatusBadRequest, "meal must be one of: breakfast, lunch, dinner, snack")
		return
	}
	if body.Calories == nil || *body.Calories < 0 {
		apiError(c, http.StatusBadRequest, "calories is required and must be non-negative")
		return
	}
	if body.Date == "" {
		body.Date = h.now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	entry, err := queryOne[mealEntry](h.db, c,
		`INSERT INTO calorie_log_meals (user_id, date, meal, description, calories)
		 VALUES (@userID, @date, @meal, @description, @calories)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "meal": body.Meal,
			"description": body.Description, "calories": *body.Calories,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create meal entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteMealEntry removes a logged meal. Returns 204 on success.
// DELETE /api/calorie-log/meals/:id.
func (h *Handler) deleteMealEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM calorie_log_meals WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete meal entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "meal entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
