package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/fittrack/internal/domain/models"
)

func TestSummaryRow(t *testing.T) {
	row := SummaryRow(models.DailyNutritionSummary{
		UserID:             5,
		Date:               time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		TotalCalories:      1450.456,
		TotalProteins:      80,
		TotalCarbohydrates: 120.333,
		TotalFats:          40.1,
		MealsConsumed:      3,
		WaterIntakeMl:      1750,
		UpdatedAt:          time.Date(2026, 4, 3, 0, 15, 0, 0, time.UTC),
	})

	assert.Equal(t, []interface{}{"2026-04-02", int64(5), 1450.46, 80.0, 120.33, 40.1, 3, 1750, "2026-04-03 00:15:00"}, row)
}
