package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/fittrack/internal/repository"
)

var (
	_ repository.MealLogRepository      = (*MealLogRepository)(nil)
	_ repository.WaterIntakeRepository  = (*WaterIntakeRepository)(nil)
	_ repository.MealCatalogRepository  = (*MealCatalogRepository)(nil)
	_ repository.DailySummaryRepository = (*DailySummaryRepository)(nil)
)

func TestUserDateFilter(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.M{"user_id": int64(4), "consumed_on": start}, userDateFilter("consumed_on", 4, start, start))
	assert.Equal(t,
		bson.M{"user_id": int64(4), "date": bson.M{"$gte": start, "$lte": end}},
		userDateFilter("date", 4, start, end))
}
