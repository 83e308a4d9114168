package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/service/hydration"
	"github.com/mamadbah2/fittrack/internal/service/nutrition"
	"github.com/mamadbah2/fittrack/pkg/clock"
)

// SummaryHandler rebuilds a whole daily summary on demand.
type SummaryHandler struct {
	nutrition *nutrition.Service
	hydration *hydration.Service
	clock     clock.Clock
	logger    *zap.Logger
}

// NewSummaryHandler constructs the HTTP handler adapter.
func NewSummaryHandler(nutritionSvc *nutrition.Service, hydrationSvc *hydration.Service, clk clock.Clock, logger *zap.Logger) *SummaryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryHandler{nutrition: nutritionSvc, hydration: hydrationSvc, clock: clk, logger: logger}
}

// Recompute re-derives both the macro and the water part of the summary for
// the date in the path.
func (h *SummaryHandler) Recompute(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	date, err := dateValue(c.Param("date"), h.clock, "date")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.nutrition.RecomputeDailySummary(ctx, userID, date); err != nil {
		respondError(c, h.logger, err)
		return
	}
	summary, err := h.hydration.RecomputeWaterIntake(ctx, userID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("summary recomputed", zap.Int64("user_id", userID), zap.String("date", c.Param("date")))
	c.JSON(http.StatusOK, summary)
}
