package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/internal/service/hydration"
	"github.com/mamadbah2/fittrack/pkg/clock"
)

// HydrationHandler exposes water logging and hydration queries over HTTP.
type HydrationHandler struct {
	svc    *hydration.Service
	clock  clock.Clock
	logger *zap.Logger
}

// NewHydrationHandler constructs the HTTP handler adapter.
func NewHydrationHandler(svc *hydration.Service, clk clock.Clock, logger *zap.Logger) *HydrationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HydrationHandler{svc: svc, clock: clk, logger: logger}
}

type addWaterRequest struct {
	AmountMl int    `json:"amount_ml"`
	Notes    string `json:"notes"`
}

type waterGoalRequest struct {
	GoalMl int `json:"goal_ml"`
}

type dailyWaterResponse struct {
	Date     string `json:"date"`
	AmountMl int    `json:"amount_ml"`
}

type progressResponse struct {
	Date     string  `json:"date"`
	IntakeMl int     `json:"intake_ml"`
	GoalMl   int     `json:"goal_ml"`
	Progress float64 `json:"progress"`
}

// AddWater records a water intake for the user.
func (h *HydrationHandler) AddWater(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req addWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	entry, err := h.svc.AddWaterIntake(c.Request.Context(), userID, req.AmountMl, req.Notes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// DeleteWater removes one of the user's water entries.
func (h *HydrationHandler) DeleteWater(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteWaterIntake(c.Request.Context(), userID, c.Param("entryID")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Daily returns the total intake of one day.
func (h *HydrationHandler) Daily(c *gin.Context) {
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

	total, err := h.svc.GetDailyWaterIntake(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dailyWaterResponse{Date: models.FormatDate(date), AmountMl: total})
}

// Progress returns the day's intake against the goal.
func (h *HydrationHandler) Progress(c *gin.Context) {
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

	ctx := c.Request.Context()
	progress, err := h.svc.GetWaterIntakeProgress(ctx, userID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	intake, err := h.svc.GetDailyWaterIntake(ctx, userID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	goal, err := h.svc.GetWaterGoal(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, progressResponse{
		Date:     models.FormatDate(date),
		IntakeMl: intake,
		GoalMl:   goal,
		Progress: progress,
	})
}

// History returns one point per day of the last days days.
func (h *HydrationHandler) History(c *gin.Context) {
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

	history, err := h.svc.GetWaterIntakeHistory(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetGoal returns the hydration goal in effect.
func (h *HydrationHandler) GetGoal(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	goal, err := h.svc.GetWaterGoal(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, waterGoalRequest{GoalMl: goal})
}

// SetGoal validates a new goal. The effective goal is echoed back.
func (h *HydrationHandler) SetGoal(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req waterGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.svc.SetWaterGoal(ctx, userID, req.GoalMl); err != nil {
		respondError(c, h.logger, err)
		return
	}
	goal, err := h.svc.GetWaterGoal(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, waterGoalRequest{GoalMl: goal})
}
