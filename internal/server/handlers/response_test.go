package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/pkg/clock"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errs.Validation("op", "bad")))
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("wrapped: %w", errs.NotFound("op", "gone"))))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errs.Persistence("op", errors.New("down"))))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("unknown")))
}

func TestDateValue(t *testing.T) {
	clk := clock.Fixed(time.Date(2026, time.March, 15, 23, 0, 0, 0, time.UTC))

	date, err := dateValue("", clk, "date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), date)

	date, err = dateValue("2026-01-02", clk, "date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), date)

	_, err = dateValue("02/01/2026", clk, "date")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestDaysQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", defaultWindowDays, false},
		{"days=30", 30, false},
		{"days=366", 366, false},
		{"days=367", 0, true},
		{"days=1099511627776", 0, true},
		{"days=0", 0, true},
		{"days=week", 0, true},
	}

	for _, tc := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/history?"+tc.query, nil)

		days, err := daysQuery(c)
		if tc.wantErr {
			assert.ErrorIs(t, err, errs.ErrValidation, tc.query)
			continue
		}
		require.NoError(t, err, tc.query)
		assert.Equal(t, tc.want, days)
	}
}
