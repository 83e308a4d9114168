package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/pkg/clock"
)

const defaultWindowDays = 7

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func userIDParam(c *gin.Context) (int64, error) {
	raw := c.Param("userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Validation("userID", "user id must be a positive integer, got %q", raw)
	}
	return id, nil
}

// dateValue parses a yyyy-MM-dd value, falling back to today when empty.
func dateValue(raw string, clk clock.Clock, name string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return clk.Today(), nil
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, errs.Validation(name, "%s must be formatted yyyy-MM-dd, got %q", name, raw)
	}
	return date, nil
}

func daysQuery(c *gin.Context) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return defaultWindowDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 || days > models.MaxWindowDays {
		return 0, errs.Validation("days", "days must be an integer between 1 and %d, got %q", models.MaxWindowDays, raw)
	}
	return days, nil
}

func bindError(err error) error {
	return errs.Validation("body", "invalid request body: %v", err)
}
