package reporting

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/domain/models"
)

const (
	digestDays   = 7
	topTypeLimit = 3
)

// NutritionReader is the slice of the nutrition engine the digest needs.
type NutritionReader interface {
	GetWeeklyAverage(ctx context.Context, userID int64) (models.RangeAverage, error)
	GetTopMealTypes(ctx context.Context, userID int64, days int) ([]models.MealTypeCount, error)
}

// HydrationReader is the slice of the hydration engine the digest needs.
type HydrationReader interface {
	GetWaterIntakeHistory(ctx context.Context, userID int64, days int) ([]models.DailyWater, error)
	GetWaterGoal(ctx context.Context, userID int64) (int, error)
}

// Service renders text digests from the aggregation engines.
type Service struct {
	nutrition NutritionReader
	hydration HydrationReader
	logger    *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(nutrition NutritionReader, hydration HydrationReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{nutrition: nutrition, hydration: hydration, logger: logger}
}

// BuildWeeklyDigest summarizes the last seven days for one user.
func (s *Service) BuildWeeklyDigest(ctx context.Context, userID int64) (string, error) {
	avg, err := s.nutrition.GetWeeklyAverage(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load weekly average: %w", err)
	}

	history, err := s.hydration.GetWaterIntakeHistory(ctx, userID, digestDays)
	if err != nil {
		return "", fmt.Errorf("load water history: %w", err)
	}

	goal, err := s.hydration.GetWaterGoal(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load water goal: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weekly summary (%s-%s)\n", models.FormatDate(avg.StartDate), models.FormatDate(avg.EndDate))
	b.WriteString(nutritionLine(avg))
	b.WriteString("\n")
	b.WriteString(hydrationLine(history, goal))

	top, err := s.nutrition.GetTopMealTypes(ctx, userID, digestDays)
	if err != nil {
		// The digest is still useful without the histogram.
		s.logger.Debug("skip meal types in digest", zap.Int64("user_id", userID), zap.Error(err))
	} else if line := mealTypesLine(top); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	return b.String(), nil
}

func nutritionLine(avg models.RangeAverage) string {
	if avg.DaysWithData == 0 {
		return "Nutrition: no meals logged yet."
	}
	return fmt.Sprintf("Nutrition: %.0f kcal/day (P %.1f g, C %.1f g, F %.1f g), %.1f meals/day over %d logged days.",
		avg.TotalCalories, avg.TotalProteins, avg.TotalCarbohydrates, avg.TotalFats, avg.MealsConsumed, avg.DaysWithData)
}

func hydrationLine(history []models.DailyWater, goal int) string {
	if len(history) == 0 {
		return "Hydration: no data."
	}

	var total, goalDays int
	for _, day := range history {
		total += day.AmountMl
		if goal > 0 && day.AmountMl >= goal {
			goalDays++
		}
	}
	avg := int(math.Round(float64(total) / float64(len(history))))

	if goal <= 0 {
		return fmt.Sprintf("Hydration: %d ml/day on average.", avg)
	}
	return fmt.Sprintf("Hydration: %d ml/day on average, goal of %d ml reached on %d/%d days.", avg, goal, goalDays, len(history))
}

func mealTypesLine(top []models.MealTypeCount) string {
	if len(top) == 0 {
		return ""
	}
	if len(top) > topTypeLimit {
		top = top[:topTypeLimit]
	}
	parts := make([]string, 0, len(top))
	for _, bucket := range top {
		parts = append(parts, fmt.Sprintf("%s x%d", bucket.Type, bucket.Count))
	}
	return "Most logged: " + strings.Join(parts, ", ") + "."
}
