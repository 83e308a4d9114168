package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/internal/service/nutrition"
	"github.com/mamadbah2/fittrack/pkg/clock"
)

// NutritionHandler exposes meal logging and nutrition queries over HTTP.
type NutritionHandler struct {
	svc    *nutrition.Service
	clock  clock.Clock
	logger *zap.Logger
}

// NewNutritionHandler constructs the HTTP handler adapter.
func NewNutritionHandler(svc *nutrition.Service, clk clock.Clock, logger *zap.Logger) *NutritionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NutritionHandler{svc: svc, clock: clk, logger: logger}
}

type logMealRequest struct {
	MealID            int64    `json:"meal_id" binding:"required"`
	PortionMultiplier *float64 `json:"portion_multiplier"`
	Notes             string   `json:"notes"`
}

// LogMeal records a meal for the user. A failed summary refresh still
// answers 201 since the entry is stored.
func (h *NutritionHandler) LogMeal(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	portion := models.DefaultPortionMultiplier
	if req.PortionMultiplier != nil {
		portion = *req.PortionMultiplier
	}

	entry, err := h.svc.LogMeal(c.Request.Context(), userID, req.MealID, portion, req.Notes)
	switch {
	case errors.Is(err, nutrition.ErrSummaryStale):
		h.logger.Warn("meal logged with stale summary", zap.Int64("user_id", userID), zap.String("entry_id", entry.ID), zap.Error(err))
	case err != nil:
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListMealLogs returns the meal log entries of one day.
func (h *NutritionHandler) ListMealLogs(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	date, err := dateValue(c.Query("date"), h.clock, "date")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	entries, err := h.svc.GetMealLogsForDate(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// DeleteMealLog removes one of the user's meal log entries.
func (h *NutritionHandler) DeleteMealLog(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteMealLog(c.Request.Context(), userID, c.Param("entryID")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Daily returns the summary of one day.
func (h *NutritionHandler) Daily(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	date, err := dateValue(c.Query("date"), h.clock, "date")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	summary, err := h.svc.GetDailyNutrition(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// History returns the stored summaries of the last days days.
func (h *NutritionHandler) History(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	days, err := daysQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	summaries, err := h.svc.GetNutritionDataForDays(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Average returns the per-day average over an explicit range.
func (h *NutritionHandler) Average(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if c.Query("start") == "" || c.Query("end") == "" {
		respondError(c, h.logger, errs.Validation("Average", "start and end are required"))
		return
	}
	start, err := dateValue(c.Query("start"), h.clock, "start")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	end, err := dateValue(c.Query("end"), h.clock, "end")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	avg, err := h.svc.GetRangeAverage(c.Request.Context(), userID, start, end)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, avg)
}

// WeeklyAverage returns the average over the last 7 days.
func (h *NutritionHandler) WeeklyAverage(c *gin.Context) {
	h.windowAverage(c, h.svc.GetWeeklyAverage)
}

// MonthlyAverage returns the average over the last 30 days.
func (h *NutritionHandler) MonthlyAverage(c *gin.Context) {
	h.windowAverage(c, h.svc.GetMonthlyAverage)
}

func (h *NutritionHandler) windowAverage(c *gin.Context, fetch func(ctx context.Context, userID int64) (models.RangeAverage, error)) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	avg, err := fetch(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, avg)
}

// TopMealTypes returns the meal-type histogram, most frequent first.
func (h *NutritionHandler) TopMealTypes(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	days, err := daysQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	top, err := h.svc.GetTopMealTypes(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, top)
}
