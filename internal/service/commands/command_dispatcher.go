package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/internal/service/hydration"
	"github.com/mamadbah2/fittrack/internal/service/nutrition"
	"github.com/mamadbah2/fittrack/pkg/clock"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

const helpText = "Commands:\n" +
	"water <ml> [notes] - log water, e.g. water 500\n" +
	"meal <meal id> [portion] - log a meal, e.g. meal 3 1.5\n" +
	"today - show today's totals"

// MealLogger is the nutrition side used by chat commands.
type MealLogger interface {
	LogMeal(ctx context.Context, userID, mealID int64, portionMultiplier float64, notes string) (models.MealLogEntry, error)
	GetDailyNutrition(ctx context.Context, userID int64, date time.Time) (models.DailyNutritionSummary, error)
}

// WaterLogger is the hydration side used by chat commands.
type WaterLogger interface {
	AddWaterIntake(ctx context.Context, userID int64, amountMl int, notes string) (models.WaterIntakeEntry, error)
	GetDailyWaterIntake(ctx context.Context, userID int64, date time.Time) (int, error)
	GetWaterGoal(ctx context.Context, userID int64) (int, error)
}

// Service turns parsed chat commands into engine calls and renders the reply.
type Service struct {
	meals  MealLogger
	water  WaterLogger
	clock  clock.Clock
	logger *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(meals MealLogger, water WaterLogger, clk clock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{meals: meals, water: water, clock: clk, logger: logger}
}

// HandleCommand executes cmd on behalf of userID and returns the reply text.
// Malformed arguments yield ErrInvalidArguments.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, userID int64) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.Int64("user_id", userID), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandWater:
		amount, notes, err := parseWaterArgs(cmd.Args)
		if err != nil {
			return "", err
		}
		if _, err := s.water.AddWaterIntake(ctx, userID, amount, notes); err != nil {
			return "", err
		}

		message := fmt.Sprintf("Logged %d ml of water.", amount)
		if progress := s.safeLine(ctx, userID, s.waterLine); progress != "" {
			message += "\n" + progress
		}
		return message, nil
	case models.CommandMeal:
		mealID, portion, err := parseMealArgs(cmd.Args)
		if err != nil {
			return "", err
		}

		_, err = s.meals.LogMeal(ctx, userID, mealID, portion, "")
		switch {
		case errors.Is(err, nutrition.ErrSummaryStale):
			return fmt.Sprintf("Meal %d logged (x%s). Today's totals will refresh shortly.", mealID, formatPortion(portion)), nil
		case err != nil:
			return "", err
		}

		message := fmt.Sprintf("Meal %d logged (x%s).", mealID, formatPortion(portion))
		if totals := s.safeLine(ctx, userID, s.nutritionLine); totals != "" {
			message += "\n" + totals
		}
		return message, nil
	case models.CommandToday:
		nutritionLine, err := s.nutritionLine(ctx, userID)
		if err != nil {
			return "", err
		}
		waterLine, err := s.waterLine(ctx, userID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Today (%s)\n%s\n%s", models.FormatDate(s.clock.Today()), nutritionLine, waterLine), nil
	case models.CommandHelp:
		return helpText, nil
	default:
		return "Unknown command.\n" + helpText, nil
	}
}

// Usage returns the argument hint for a command type.
func Usage(t models.CommandType) string {
	switch t {
	case models.CommandWater:
		return "Usage: water <ml> [notes], e.g. water 500"
	case models.CommandMeal:
		return "Usage: meal <meal id> [portion], e.g. meal 3 1.5"
	default:
		return helpText
	}
}

func (s *Service) nutritionLine(ctx context.Context, userID int64) (string, error) {
	summary, err := s.meals.GetDailyNutrition(ctx, userID, s.clock.Today())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Nutrition: %.0f kcal, P %.1f g, C %.1f g, F %.1f g, %d meals.",
		summary.TotalCalories, summary.TotalProteins, summary.TotalCarbohydrates, summary.TotalFats, summary.MealsConsumed), nil
}

func (s *Service) waterLine(ctx context.Context, userID int64) (string, error) {
	intake, err := s.water.GetDailyWaterIntake(ctx, userID, s.clock.Today())
	if err != nil {
		return "", err
	}
	goal, err := s.water.GetWaterGoal(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Water: %d / %d ml (%.0f%%).", intake, goal, hydration.Progress(intake, goal)), nil
}

func (s *Service) safeLine(ctx context.Context, userID int64, fn func(context.Context, int64) (string, error)) string {
	line, err := fn(ctx, userID)
	if err != nil {
		s.logger.Debug("reply summary failed", zap.Int64("user_id", userID), zap.Error(err))
		return ""
	}
	return line
}

func parseWaterArgs(args []string) (int, string, error) {
	if len(args) == 0 {
		return 0, "", ErrInvalidArguments
	}

	amount, err := strconv.Atoi(strings.TrimSuffix(args[0], "ml"))
	if err != nil {
		return 0, "", ErrInvalidArguments
	}
	return amount, strings.Join(args[1:], " "), nil
}

func parseMealArgs(args []string) (int64, float64, error) {
	if len(args) == 0 {
		return 0, 0, ErrInvalidArguments
	}

	mealID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, ErrInvalidArguments
	}

	portion := models.DefaultPortionMultiplier
	if len(args) > 1 {
		portion, err = strconv.ParseFloat(strings.TrimPrefix(args[1], "x"), 64)
		if err != nil {
			return 0, 0, ErrInvalidArguments
		}
	}
	return mealID, portion, nil
}

func formatPortion(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
