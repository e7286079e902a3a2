package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// parseDaysParam reads and validates the trailing-window ?days= query param.
// Defaults to the engine window. ok=false means a 400 was already written.
func parseDaysParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("days", strconv.Itoa(windowDays))
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 365 {
		apiError(c, http.StatusBadRequest, "days must be an integer between 1 and 365")
		return 0, false
	}
	return days, true
}

// windowStart formats the first date (inclusive) of a trailing N-day window.
func windowStart(now time.Time, days int) string {
	return now.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
}

// getWeightLog returns the authenticated user's weight entries for a trailing
// window, oldest first. GET /api/weight-log?days=N (defaults to the engine
// window). Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getWeightLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	days, ok := parseDaysParam(c)
	if !ok {
		return
	}

	entries, err := queryMany[weightEntry](h.db, c,
		`SELECT * FROM weight_log
		 WHERE user_id = @userID AND date >= @start
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": windowStart(h.now(), days)})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}
	// Ensure empty array (not null) in JSON
	if entries == nil {
		entries = []weightEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// upsertWeightEntry creates or updates the weight entry for the given date.
// POST /api/weight-log. Body: { "date": "YYYY-MM-DD", "weight_lbs": 185.5 }.
// Date defaults to today. The UNIQUE(user_id, date) constraint means posting
// the same date updates in place — latest write wins, which is also the
// dedup rule the engine applies as a safety net.
func (h *Handler) upsertWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Date      string  `json:"date"`
		WeightLBS float64 `json:"weight_lbs"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = h.now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.WeightLBS <= 0 || body.WeightLBS > 9999.9 {
		apiError(c, http.StatusBadRequest, "weight_lbs must be between 0 and 9999.9")
		return
	}

	entry, err := queryOne[weightEntry](h.db, c,
		`INSERT INTO weight_log (user_id, date, weight_lbs)
		 VALUES (@userID, @date, @weightLBS)
		 ON CONFLICT (user_id, date) DO UPDATE SET weight_lbs = EXCLUDED.weight_lbs
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": body.Date, "weightLBS": body.WeightLBS})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert weight entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteWeightEntry removes a weight log entry by ID.
// DELETE /api/weight-log/:id. Returns 204 on success, 404 if not found.
// Ownership is enforced by requiring both id and user_id to match.
func (h *Handler) deleteWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM weight_log WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete weight entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
