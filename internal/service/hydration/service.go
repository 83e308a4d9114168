package hydration

import (
	"context"
	"errors"
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

// Service maintains the water component of the daily summary and answers
// hydration progress and history queries.
type Service struct {
	water     repository.WaterIntakeRepository
	summaries repository.DailySummaryRepository
	locks     *keylock.Locker
	clock     clock.Clock
	goalMl    int
	logger    *zap.Logger
	newID     func() string
}

// NewService wires a hydration engine. goalMl is the hydration goal applied to
// every user until per-user preferences are stored.
func NewService(
	water repository.WaterIntakeRepository,
	summaries repository.DailySummaryRepository,
	locks *keylock.Locker,
	clk clock.Clock,
	goalMl int,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locks == nil {
		locks = keylock.New()
	}
	return &Service{
		water:     water,
		summaries: summaries,
		locks:     locks,
		clock:     clk,
		goalMl:    goalMl,
		logger:    logger,
		newID:     func() string { return uuid.NewString() },
	}
}

// AddWaterIntake records water consumed now. Refreshing the day's summary is
// best effort: once the entry is stored the call succeeds.
func (s *Service) AddWaterIntake(ctx context.Context, userID int64, amountMl int, notes string) (models.WaterIntakeEntry, error) {
	if amountMl <= 0 {
		return models.WaterIntakeEntry{}, errs.Validation("AddWaterIntake", "amount must be a positive number of ml, got %d", amountMl)
	}

	now := s.clock.Timestamp()
	entry := models.WaterIntakeEntry{
		ID:         s.newID(),
		UserID:     userID,
		AmountMl:   amountMl,
		ConsumedAt: now,
		ConsumedOn: s.clock.DateOf(now),
		Notes:      strings.TrimSpace(notes),
		CreatedAt:  now,
	}

	if err := s.water.Create(ctx, entry); err != nil {
		return models.WaterIntakeEntry{}, errs.Persistence("AddWaterIntake", err)
	}

	s.refresh(ctx, userID, entry.ConsumedOn, "water intake added")
	return entry, nil
}

// DeleteWaterIntake removes one of the user's entries and refreshes the
// summary of the day the entry was consumed on.
func (s *Service) DeleteWaterIntake(ctx context.Context, userID int64, entryID string) error {
	entry, err := s.water.DeleteByUser(ctx, userID, entryID)
	if err != nil {
		return errs.Persistence("DeleteWaterIntake", err)
	}

	s.refresh(ctx, userID, entry.ConsumedOn, "water intake deleted")
	return nil
}

// RecomputeWaterIntake re-derives the day's water total from every entry of
// that day and upserts it, creating a zero-macro summary when none exists.
func (s *Service) RecomputeWaterIntake(ctx context.Context, userID int64, date time.Time) (models.DailyNutritionSummary, error) {
	unlock := s.locks.Lock(models.SummaryKey(userID, date))
	defer unlock()

	total, err := s.GetDailyWaterIntake(ctx, userID, date)
	if err != nil {
		return models.DailyNutritionSummary{}, err
	}

	now := s.clock.Timestamp()
	summary, err := s.summaries.GetByUserAndDate(ctx, userID, date)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		summary = models.DailyNutritionSummary{
			UserID:        userID,
			Date:          date,
			WaterIntakeMl: total,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.summaries.Create(ctx, summary); err != nil {
			return models.DailyNutritionSummary{}, errs.Persistence("RecomputeWaterIntake", err)
		}
	case err != nil:
		return models.DailyNutritionSummary{}, errs.Persistence("RecomputeWaterIntake", err)
	default:
		summary.WaterIntakeMl = total
		summary.UpdatedAt = now
		if err := s.summaries.Update(ctx, summary); err != nil {
			return models.DailyNutritionSummary{}, errs.Persistence("RecomputeWaterIntake", err)
		}
	}
	return summary, nil
}

// GetDailyWaterIntake sums the user's entries of one date.
func (s *Service) GetDailyWaterIntake(ctx context.Context, userID int64, date time.Time) (int, error) {
	entries, err := s.water.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return 0, errs.Persistence("GetDailyWaterIntake", err)
	}

	total := 0
	for _, entry := range entries {
		total += entry.AmountMl
	}
	return total, nil
}

// GetWaterIntakeProgress is the day's intake as a percentage of the goal.
func (s *Service) GetWaterIntakeProgress(ctx context.Context, userID int64, date time.Time) (float64, error) {
	intake, err := s.GetDailyWaterIntake(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	goal, err := s.GetWaterGoal(ctx, userID)
	if err != nil {
		return 0, err
	}
	return Progress(intake, goal), nil
}

// Progress returns intake/goal*100 capped at 100, and 0 for a non-positive goal.
func Progress(intakeMl, goalMl int) float64 {
	if goalMl <= 0 {
		return 0
	}
	pct := float64(intakeMl) / float64(goalMl) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// GetWaterIntakeHistory returns one point per calendar day of the last days
// days, oldest first. Days without entries are present with 0 ml.
func (s *Service) GetWaterIntakeHistory(ctx context.Context, userID int64, days int) ([]models.DailyWater, error) {
	if days <= 0 || days > models.MaxWindowDays {
		return nil, errs.Validation("GetWaterIntakeHistory", "days must be between 1 and %d, got %d", models.MaxWindowDays, days)
	}

	end := s.clock.Today()
	start := models.WindowStart(end, days)

	entries, err := s.water.GetByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, errs.Persistence("GetWaterIntakeHistory", err)
	}

	totals := make(map[string]int, days)
	for _, entry := range entries {
		totals[models.FormatDate(entry.ConsumedOn)] += entry.AmountMl
	}

	history := make([]models.DailyWater, 0, days)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		key := models.FormatDate(date)
		history = append(history, models.DailyWater{Date: key, AmountMl: totals[key]})
	}
	return history, nil
}

// GetWaterGoal returns the user's hydration goal in ml.
func (s *Service) GetWaterGoal(_ context.Context, _ int64) (int, error) {
	return s.goalMl, nil
}

// SetWaterGoal validates a goal. Goals are not persisted yet, so the
// configured default stays in effect.
func (s *Service) SetWaterGoal(_ context.Context, userID int64, goalMl int) error {
	if goalMl <= 0 {
		return errs.Validation("SetWaterGoal", "goal must be a positive number of ml, got %d", goalMl)
	}
	s.logger.Info("water goal accepted but not persisted",
		zap.Int64("user_id", userID),
		zap.Int("requested_ml", goalMl),
		zap.Int("effective_ml", s.goalMl))
	return nil
}

func (s *Service) refresh(ctx context.Context, userID int64, date time.Time, reason string) {
	if _, err := s.RecomputeWaterIntake(ctx, userID, date); err != nil {
		s.logger.Warn("summary refresh failed",
			zap.String("reason", reason),
			zap.Int64("user_id", userID),
			zap.String("date", models.FormatDate(date)),
			zap.Error(err))
	}
}
