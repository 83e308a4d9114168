package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/internal/repository"
)

var (
	_ repository.MealLogRepository      = (*MealLogs)(nil)
	_ repository.WaterIntakeRepository  = (*WaterIntakes)(nil)
	_ repository.MealCatalogRepository  = (*Catalog)(nil)
	_ repository.DailySummaryRepository = (*Summaries)(nil)
)

func day(d int) time.Time {
	return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestMealLogsRangeIsInclusiveAndPerUser(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for i, entry := range []models.MealLogEntry{
		{ID: "a", UserID: 1, ConsumedOn: day(1), ConsumedAt: day(1).Add(8 * time.Hour)},
		{ID: "b", UserID: 1, ConsumedOn: day(3), ConsumedAt: day(3).Add(8 * time.Hour)},
		{ID: "c", UserID: 1, ConsumedOn: day(4), ConsumedAt: day(4).Add(8 * time.Hour)},
		{ID: "d", UserID: 2, ConsumedOn: day(2), ConsumedAt: day(2).Add(8 * time.Hour)},
	} {
		require.NoError(t, store.MealLogs.Create(ctx, entry), i)
	}

	got, err := store.MealLogs.GetByUserAndDateRange(ctx, 1, day(1), day(3))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	none, err := store.MealLogs.GetByUserAndDate(ctx, 2, day(1))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDeleteByUserEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Water.Create(ctx, models.WaterIntakeEntry{ID: "w1", UserID: 5, AmountMl: 250, ConsumedOn: day(1)}))

	_, err := store.Water.DeleteByUser(ctx, 6, "w1")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	deleted, err := store.Water.DeleteByUser(ctx, 5, "w1")
	require.NoError(t, err)
	assert.Equal(t, 250, deleted.AmountMl)

	assert.ErrorIs(t, store.Water.Delete(ctx, "w1"), errs.ErrNotFound)
}

func TestSummariesCreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	summary := models.DailyNutritionSummary{UserID: 1, Date: day(2), TotalCalories: 100}

	assert.ErrorIs(t, store.Summaries.Update(ctx, summary), errs.ErrNotFound)
	require.NoError(t, store.Summaries.Create(ctx, summary))
	assert.ErrorIs(t, store.Summaries.Create(ctx, summary), errs.ErrPersistence)

	summary.TotalCalories = 250
	require.NoError(t, store.Summaries.Update(ctx, summary))

	got, err := store.Summaries.GetByUserAndDate(ctx, 1, day(2))
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.TotalCalories)

	_, err = store.Summaries.GetByUserAndDate(ctx, 1, day(3))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCatalogLookup(t *testing.T) {
	store := NewStore()
	store.Catalog.Put(models.MealNutritionFacts{MealID: 7, CaloriesPerServing: 300, Type: "Breakfast"})

	meal, err := store.Catalog.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", meal.Type)

	_, err = store.Catalog.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
