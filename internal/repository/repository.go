// Package repository declares the stores the aggregation engines depend on.
// Implementations live in the mongodb and memory subpackages.
//
// Contract shared by every implementation:
//   - missing rows are reported as errs.ErrNotFound,
//   - store failures are reported as errs.ErrPersistence,
//   - list methods return an empty, non-nil slice when nothing matches,
//   - dates are calendar dates normalized to midnight UTC and ranges are inclusive.
package repository

import (
	"context"
	"time"

	"github.com/mamadbah2/fittrack/internal/domain/models"
)

// MealLogRepository is the append-only store of meal consumption events.
type MealLogRepository interface {
	Create(ctx context.Context, entry models.MealLogEntry) error
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]models.MealLogEntry, error)
	GetByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]models.MealLogEntry, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes the entry only when it belongs to userID and returns the removed row.
	DeleteByUser(ctx context.Context, userID int64, id string) (models.MealLogEntry, error)
}

// WaterIntakeRepository is the append-only store of water intake events.
type WaterIntakeRepository interface {
	Create(ctx context.Context, entry models.WaterIntakeEntry) error
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]models.WaterIntakeEntry, error)
	GetByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]models.WaterIntakeEntry, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes the entry only when it belongs to userID and returns the removed row.
	DeleteByUser(ctx context.Context, userID int64, id string) (models.WaterIntakeEntry, error)
}

// MealCatalogRepository resolves per-serving nutrition facts.
type MealCatalogRepository interface {
	GetByID(ctx context.Context, mealID int64) (models.MealNutritionFacts, error)
}

// DailySummaryRepository is the keyed store of one summary per (user, date).
type DailySummaryRepository interface {
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (models.DailyNutritionSummary, error)
	GetByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]models.DailyNutritionSummary, error)
	Create(ctx context.Context, summary models.DailyNutritionSummary) error
	Update(ctx context.Context, summary models.DailyNutritionSummary) error
}
