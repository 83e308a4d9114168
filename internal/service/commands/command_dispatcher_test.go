package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
	"github.com/mamadbah2/fittrack/internal/repository/memory"
	"github.com/mamadbah2/fittrack/internal/service/hydration"
	"github.com/mamadbah2/fittrack/internal/service/nutrition"
	"github.com/mamadbah2/fittrack/pkg/clock"
	"github.com/mamadbah2/fittrack/pkg/keylock"
)

const userID int64 = 9

func newDispatcher(t *testing.T) *Service {
	t.Helper()

	store := memory.NewStore()
	store.Catalog.Put(models.MealNutritionFacts{MealID: 1, CaloriesPerServing: 300, ProteinsPerServing: 20, CarbsPerServing: 40, FatsPerServing: 10, Type: "Lunch"})

	log := zaptest.NewLogger(t)
	clk := clock.Fixed(time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	locks := keylock.New()

	meals := nutrition.NewService(store.MealLogs, store.Water, store.Catalog, store.Summaries, locks, clk, log)
	water := hydration.NewService(store.Water, store.Summaries, locks, clk, 2000, log)
	return NewService(meals, water, clk, log)
}

func handle(t *testing.T, s *Service, text string) (string, error) {
	t.Helper()
	return s.HandleCommand(context.Background(), models.ParseCommand(text), userID)
}

func TestHandleCommand_Water(t *testing.T) {
	s := newDispatcher(t)

	reply, err := handle(t, s, "water 500 after run")
	require.NoError(t, err)
	assert.Equal(t, "Logged 500 ml of water.\nWater: 500 / 2000 ml (25%).", reply)

	reply, err = handle(t, s, "eau 500ml")
	require.NoError(t, err)
	assert.Equal(t, "Logged 500 ml of water.\nWater: 1000 / 2000 ml (50%).", reply)
}

func TestHandleCommand_Meal(t *testing.T) {
	s := newDispatcher(t)

	reply, err := handle(t, s, "meal 1 x1.5")
	require.NoError(t, err)
	assert.Equal(t, "Meal 1 logged (x1.5).\nNutrition: 450 kcal, P 30.0 g, C 60.0 g, F 15.0 g, 1 meals.", reply)

	reply, err = handle(t, s, "/meal 1")
	require.NoError(t, err)
	assert.Equal(t, "Meal 1 logged (x1).\nNutrition: 750 kcal, P 50.0 g, C 100.0 g, F 25.0 g, 2 meals.", reply)
}

func TestHandleCommand_Today(t *testing.T) {
	s := newDispatcher(t)

	_, err := handle(t, s, "meal 1")
	require.NoError(t, err)
	_, err = handle(t, s, "water 1000")
	require.NoError(t, err)

	reply, err := handle(t, s, "today")
	require.NoError(t, err)
	assert.Equal(t, "Today (2026-03-15)\nNutrition: 300 kcal, P 20.0 g, C 40.0 g, F 10.0 g, 1 meals.\nWater: 1000 / 2000 ml (50%).", reply)
}

func TestHandleCommand_Errors(t *testing.T) {
	s := newDispatcher(t)

	_, err := handle(t, s, "water lots")
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = handle(t, s, "meal")
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = handle(t, s, "meal 1 half")
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = handle(t, s, "water 0")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = handle(t, s, "meal 1 0")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestHandleCommand_HelpAndUnknown(t *testing.T) {
	s := newDispatcher(t)

	reply, err := handle(t, s, "help")
	require.NoError(t, err)
	assert.Equal(t, helpText, reply)

	reply, err = handle(t, s, "dance")
	require.NoError(t, err)
	assert.Equal(t, "Unknown command.\n"+helpText, reply)
}

func TestUsage(t *testing.T) {
	assert.Contains(t, Usage(models.CommandWater), "water <ml>")
	assert.Contains(t, Usage(models.CommandMeal), "meal <meal id>")
	assert.Equal(t, helpText, Usage(models.CommandToday))
}
