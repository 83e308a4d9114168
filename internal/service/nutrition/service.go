package nutrition

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/internal/repository"
	"github.com/mamadbah2/fittrack/pkg/clock"
	"github.com/mamadbah2/fittrack/pkg/keylock"
)

const (
	weekDays  = 7
	monthDays = 30
)

// ErrSummaryStale is returned together with a committed meal log entry when
// the follow-up summary recompute failed. The entry is not rolled back; the
// next write or lazy read re-derives the summary.
var ErrSummaryStale = errors.New("daily summary refresh failed")

// Service derives daily nutrition summaries from the meal log and answers
// range and frequency queries over them.
type Service struct {
	logs      repository.MealLogRepository
	water     repository.WaterIntakeRepository
	catalog   repository.MealCatalogRepository
	summaries repository.DailySummaryRepository
	locks     *keylock.Locker
	clock     clock.Clock
	logger    *zap.Logger
	newID     func() string
}

// NewService wires a nutrition engine. locks must be shared with the
// hydration engine because both write the same summary rows. water is read
// only when a summary row has to be created.
func NewService(
	logs repository.MealLogRepository,
	water repository.WaterIntakeRepository,
	catalog repository.MealCatalogRepository,
	summaries repository.DailySummaryRepository,
	locks *keylock.Locker,
	clk clock.Clock,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locks == nil {
		locks = keylock.New()
	}
	return &Service{
		logs:      logs,
		water:     water,
		catalog:   catalog,
		summaries: summaries,
		locks:     locks,
		clock:     clk,
		logger:    logger,
		newID:     func() string { return uuid.NewString() },
	}
}

// LogMeal records a meal consumed now and refreshes today's summary.
func (s *Service) LogMeal(ctx context.Context, userID, mealID int64, portionMultiplier float64, notes string) (models.MealLogEntry, error) {
	if portionMultiplier <= 0 || math.IsNaN(portionMultiplier) || math.IsInf(portionMultiplier, 0) {
		return models.MealLogEntry{}, errs.Validation("LogMeal", "portion multiplier must be a positive number, got %v", portionMultiplier)
	}

	now := s.clock.Timestamp()
	entry := models.MealLogEntry{
		ID:                s.newID(),
		UserID:            userID,
		MealID:            mealID,
		ConsumedAt:        now,
		ConsumedOn:        s.clock.DateOf(now),
		PortionMultiplier: portionMultiplier,
		Notes:             strings.TrimSpace(notes),
		CreatedAt:         now,
	}

	if err := s.logs.Create(ctx, entry); err != nil {
		return models.MealLogEntry{}, errs.Persistence("LogMeal", err)
	}

	if _, err := s.RecomputeDailySummary(ctx, userID, entry.ConsumedOn); err != nil {
		s.logger.Warn("summary refresh after meal log failed",
			zap.Int64("user_id", userID),
			zap.String("date", models.FormatDate(entry.ConsumedOn)),
			zap.String("entry_id", entry.ID),
			zap.Error(err))
		return entry, fmt.Errorf("%w: %w", ErrSummaryStale, err)
	}

	s.logger.Debug("meal logged", zap.Int64("user_id", userID), zap.Int64("meal_id", mealID), zap.Float64("portion", portionMultiplier))
	return entry, nil
}

// DeleteMealLog removes one of the user's meal log entries and refreshes the
// summary of the day the entry belonged to. A failed refresh is only logged.
func (s *Service) DeleteMealLog(ctx context.Context, userID int64, entryID string) error {
	entry, err := s.logs.DeleteByUser(ctx, userID, entryID)
	if err != nil {
		return errs.Persistence("DeleteMealLog", err)
	}

	if _, err := s.RecomputeDailySummary(ctx, userID, entry.ConsumedOn); err != nil {
		s.logger.Warn("summary refresh after meal log delete failed",
			zap.Int64("user_id", userID),
			zap.String("date", models.FormatDate(entry.ConsumedOn)),
			zap.Error(err))
	}
	return nil
}

// GetDailyNutrition returns the stored summary, materializing it when absent.
func (s *Service) GetDailyNutrition(ctx context.Context, userID int64, date time.Time) (models.DailyNutritionSummary, error) {
	summary, err := s.summaries.GetByUserAndDate(ctx, userID, date)
	switch {
	case err == nil:
		return summary, nil
	case errors.Is(err, errs.ErrNotFound):
		return s.RecomputeDailySummary(ctx, userID, date)
	default:
		return models.DailyNutritionSummary{}, errs.Persistence("GetDailyNutrition", err)
	}
}

// RecomputeDailySummary re-derives the macro fields and meal count of one day
// from every meal log entry of that day. The water field of an existing row
// is left as stored; a new row gets the day's water total.
// The summary is never adjusted by a delta: full re-derivation is what keeps
// concurrent writers from compounding a lost update.
func (s *Service) RecomputeDailySummary(ctx context.Context, userID int64, date time.Time) (models.DailyNutritionSummary, error) {
	unlock := s.locks.Lock(models.SummaryKey(userID, date))
	defer unlock()

	entries, err := s.logs.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return models.DailyNutritionSummary{}, errs.Persistence("RecomputeDailySummary", err)
	}

	totals, err := s.sumMacros(ctx, entries)
	if err != nil {
		return models.DailyNutritionSummary{}, err
	}

	now := s.clock.Timestamp()
	summary, err := s.summaries.GetByUserAndDate(ctx, userID, date)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		waterMl, err := s.waterTotal(ctx, userID, date)
		if err != nil {
			return models.DailyNutritionSummary{}, err
		}
		summary = models.DailyNutritionSummary{UserID: userID, Date: date, WaterIntakeMl: waterMl, CreatedAt: now}
		totals.apply(&summary)
		summary.UpdatedAt = now
		if err := s.summaries.Create(ctx, summary); err != nil {
			return models.DailyNutritionSummary{}, errs.Persistence("RecomputeDailySummary", err)
		}
	case err != nil:
		return models.DailyNutritionSummary{}, errs.Persistence("RecomputeDailySummary", err)
	default:
		totals.apply(&summary)
		summary.UpdatedAt = now
		if err := s.summaries.Update(ctx, summary); err != nil {
			return models.DailyNutritionSummary{}, errs.Persistence("RecomputeDailySummary", err)
		}
	}

	return summary, nil
}

// GetNutritionDataForDays lists the stored summaries of the last days days,
// today included. Days without a summary are absent from the result.
func (s *Service) GetNutritionDataForDays(ctx context.Context, userID int64, days int) ([]models.DailyNutritionSummary, error) {
	if days <= 0 || days > models.MaxWindowDays {
		return nil, errs.Validation("GetNutritionDataForDays", "days must be between 1 and %d, got %d", models.MaxWindowDays, days)
	}
	end := s.clock.Today()
	summaries, err := s.summaries.GetByUserAndDateRange(ctx, userID, models.WindowStart(end, days), end)
	if err != nil {
		return nil, errs.Persistence("GetNutritionDataForDays", err)
	}
	if summaries == nil {
		summaries = []models.DailyNutritionSummary{}
	}
	return summaries, nil
}

// GetRangeAverage averages every numeric summary field over the rows that
// exist in [start, end]. The denominator is the row count, not the number of
// calendar days; with no rows the result is all zero.
func (s *Service) GetRangeAverage(ctx context.Context, userID int64, start, end time.Time) (models.RangeAverage, error) {
	if end.Before(start) {
		return models.RangeAverage{}, errs.Validation("GetRangeAverage", "end date %s is before start date %s", models.FormatDate(end), models.FormatDate(start))
	}

	rows, err := s.summaries.GetByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return models.RangeAverage{}, errs.Persistence("GetRangeAverage", err)
	}

	avg := models.RangeAverage{UserID: userID, StartDate: start, EndDate: end, DaysWithData: len(rows)}
	if len(rows) == 0 {
		return avg, nil
	}

	for _, row := range rows {
		avg.TotalCalories += row.TotalCalories
		avg.TotalProteins += row.TotalProteins
		avg.TotalCarbohydrates += row.TotalCarbohydrates
		avg.TotalFats += row.TotalFats
		avg.MealsConsumed += float64(row.MealsConsumed)
		avg.WaterIntakeMl += float64(row.WaterIntakeMl)
	}

	n := float64(len(rows))
	avg.TotalCalories /= n
	avg.TotalProteins /= n
	avg.TotalCarbohydrates /= n
	avg.TotalFats /= n
	avg.MealsConsumed /= n
	avg.WaterIntakeMl /= n
	return avg, nil
}

// GetWeeklyAverage is the range average of the last 7 days, today included.
func (s *Service) GetWeeklyAverage(ctx context.Context, userID int64) (models.RangeAverage, error) {
	end := s.clock.Today()
	return s.GetRangeAverage(ctx, userID, models.WindowStart(end, weekDays), end)
}

// GetMonthlyAverage is the range average of the last 30 days, today included.
func (s *Service) GetMonthlyAverage(ctx context.Context, userID int64) (models.RangeAverage, error) {
	end := s.clock.Today()
	return s.GetRangeAverage(ctx, userID, models.WindowStart(end, monthDays), end)
}

// GetTopMealTypes counts logged meals per catalog type over the last days
// days. Buckets are ordered by descending count; ties keep first-seen order.
func (s *Service) GetTopMealTypes(ctx context.Context, userID int64, days int) ([]models.MealTypeCount, error) {
	if days <= 0 || days > models.MaxWindowDays {
		return nil, errs.Validation("GetTopMealTypes", "days must be between 1 and %d, got %d", models.MaxWindowDays, days)
	}

	end := s.clock.Today()
	entries, err := s.logs.GetByUserAndDateRange(ctx, userID, models.WindowStart(end, days), end)
	if err != nil {
		return nil, errs.Persistence("GetTopMealTypes", err)
	}

	lookup := newMealLookup(s.catalog)
	counts := make([]models.MealTypeCount, 0)
	index := make(map[string]int)

	for _, entry := range entries {
		meal, ok, err := lookup.get(ctx, entry.MealID)
		if err != nil {
			return nil, errs.Persistence("GetTopMealTypes", err)
		}
		mealType := strings.TrimSpace(meal.Type)
		if !ok || mealType == "" {
			continue
		}

		if i, seen := index[mealType]; seen {
			counts[i].Count++
			continue
		}
		index[mealType] = len(counts)
		counts = append(counts, models.MealTypeCount{Type: mealType, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts, nil
}

// GetMealLogsForDate lists the user's meal log entries of one date.
func (s *Service) GetMealLogsForDate(ctx context.Context, userID int64, date time.Time) ([]models.MealLogEntry, error) {
	entries, err := s.logs.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, errs.Persistence("GetMealLogsForDate", err)
	}
	if entries == nil {
		entries = []models.MealLogEntry{}
	}
	return entries, nil
}

type macroTotals struct {
	calories, proteins, carbs, fats float64
	meals                           int
}

func (t macroTotals) apply(summary *models.DailyNutritionSummary) {
	summary.TotalCalories = t.calories
	summary.TotalProteins = t.proteins
	summary.TotalCarbohydrates = t.carbs
	summary.TotalFats = t.fats
	summary.MealsConsumed = t.meals
}

// sumMacros scales each entry's per-serving facts by its portion multiplier.
// Entries whose meal is missing from the catalog add nothing but still count.
func (s *Service) sumMacros(ctx context.Context, entries []models.MealLogEntry) (macroTotals, error) {
	var totals macroTotals
	lookup := newMealLookup(s.catalog)

	for _, entry := range entries {
		totals.meals++

		meal, ok, err := lookup.get(ctx, entry.MealID)
		if err != nil {
			return macroTotals{}, errs.Persistence("RecomputeDailySummary", err)
		}
		if !ok {
			s.logger.Debug("meal missing from catalog", zap.Int64("meal_id", entry.MealID), zap.String("entry_id", entry.ID))
			continue
		}

		totals.calories += meal.CaloriesPerServing * entry.PortionMultiplier
		totals.proteins += meal.ProteinsPerServing * entry.PortionMultiplier
		totals.carbs += meal.CarbsPerServing * entry.PortionMultiplier
		totals.fats += meal.FatsPerServing * entry.PortionMultiplier
	}
	return totals, nil
}

func (s *Service) waterTotal(ctx context.Context, userID int64, date time.Time) (int, error) {
	if s.water == nil {
		return 0, nil
	}
	entries, err := s.water.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return 0, errs.Persistence("RecomputeDailySummary", err)
	}
	total := 0
	for _, entry := range entries {
		total += entry.AmountMl
	}
	return total, nil
}

// mealLookup memoizes catalog reads for the duration of one operation.
type mealLookup struct {
	catalog repository.MealCatalogRepository
	cache   map[int64]*models.MealNutritionFacts
}

func newMealLookup(catalog repository.MealCatalogRepository) *mealLookup {
	return &mealLookup{catalog: catalog, cache: make(map[int64]*models.MealNutritionFacts)}
}

func (l *mealLookup) get(ctx context.Context, mealID int64) (models.MealNutritionFacts, bool, error) {
	if cached, ok := l.cache[mealID]; ok {
		if cached == nil {
			return models.MealNutritionFacts{}, false, nil
		}
		return *cached, true, nil
	}

	meal, err := l.catalog.GetByID(ctx, mealID)
	if errors.Is(err, errs.ErrNotFound) {
		l.cache[mealID] = nil
		return models.MealNutritionFacts{}, false, nil
	}
	if err != nil {
		return models.MealNutritionFacts{}, false, err
	}
	l.cache[mealID] = &meal
	return meal, true, nil
}
