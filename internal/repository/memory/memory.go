// Package memory is a thread-safe in-memory implementation of the repository
// interfaces. It backs the "memory" storage driver and the engine tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
)

// Store groups the four in-memory stores.
type Store struct {
	MealLogs  *MealLogs
	Water     *WaterIntakes
	Catalog   *Catalog
	Summaries *Summaries
}

// NewStore creates empty stores.
func NewStore() *Store {
	return &Store{
		MealLogs:  &MealLogs{entries: make(map[string]models.MealLogEntry)},
		Water:     &WaterIntakes{entries: make(map[string]models.WaterIntakeEntry)},
		Catalog:   &Catalog{meals: make(map[int64]models.MealNutritionFacts)},
		Summaries: &Summaries{rows: make(map[summaryKey]models.DailyNutritionSummary)},
	}
}

func inRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

// MealLogs ------------------------------------------------------------------

// MealLogs is the in-memory meal log store.
type MealLogs struct {
	mu      sync.RWMutex
	entries map[string]models.MealLogEntry
}

// Create stores a new meal log entry; duplicate ids are a persistence error.
func (m *MealLogs) Create(_ context.Context, entry models.MealLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[entry.ID]; exists {
		return errs.Persistence("meal_logs.create", errDuplicate(entry.ID))
	}
	m.entries[entry.ID] = entry
	return nil
}

// GetByUserAndDate lists the user's meal log entries of one date.
func (m *MealLogs) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]models.MealLogEntry, error) {
	return m.GetByUserAndDateRange(ctx, userID, date, date)
}

// GetByUserAndDateRange lists the user's meal log entries within [start, end].
func (m *MealLogs) GetByUserAndDateRange(_ context.Context, userID int64, start, end time.Time) ([]models.MealLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.MealLogEntry, 0)
	for _, entry := range m.entries {
		if entry.UserID == userID && inRange(entry.ConsumedOn, start, end) {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ConsumedAt.Equal(result[j].ConsumedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].ConsumedAt.Before(result[j].ConsumedAt)
	})
	return result, nil
}

// Delete removes a meal log entry by id regardless of owner.
func (m *MealLogs) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return errs.NotFound("meal_logs.delete", "meal log entry %s", id)
	}
	delete(m.entries, id)
	return nil
}

// DeleteByUser removes a meal log entry only if it belongs to userID and returns it.
func (m *MealLogs) DeleteByUser(_ context.Context, userID int64, id string) (models.MealLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok || entry.UserID != userID {
		return models.MealLogEntry{}, errs.NotFound("meal_logs.delete", "meal log entry %s for user %d", id, userID)
	}
	delete(m.entries, id)
	return entry, nil
}

// WaterIntakes --------------------------------------------------------------

// WaterIntakes is the in-memory water intake store.
type WaterIntakes struct {
	mu      sync.RWMutex
	entries map[string]models.WaterIntakeEntry
}

// Create stores a new water intake entry; duplicate ids are a persistence error.
func (w *WaterIntakes) Create(_ context.Context, entry models.WaterIntakeEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.entries[entry.ID]; exists {
		return errs.Persistence("water_intakes.create", errDuplicate(entry.ID))
	}
	w.entries[entry.ID] = entry
	return nil
}

// GetByUserAndDate lists the user's water intake entries of one date.
func (w *WaterIntakes) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]models.WaterIntakeEntry, error) {
	return w.GetByUserAndDateRange(ctx, userID, date, date)
}

// GetByUserAndDateRange lists the user's water intake entries within [start, end].
func (w *WaterIntakes) GetByUserAndDateRange(_ context.Context, userID int64, start, end time.Time) ([]models.WaterIntakeEntry, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	result := make([]models.WaterIntakeEntry, 0)
	for _, entry := range w.entries {
		if entry.UserID == userID && inRange(entry.ConsumedOn, start, end) {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ConsumedAt.Equal(result[j].ConsumedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].ConsumedAt.Before(result[j].ConsumedAt)
	})
	return result, nil
}

// Delete removes a water intake entry by id regardless of owner.
func (w *WaterIntakes) Delete(_ context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entries[id]; !ok {
		return errs.NotFound("water_intakes.delete", "water intake entry %s", id)
	}
	delete(w.entries, id)
	return nil
}

// DeleteByUser removes a water intake entry only if it belongs to userID and returns it.
func (w *WaterIntakes) DeleteByUser(_ context.Context, userID int64, id string) (models.WaterIntakeEntry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, ok := w.entries[id]
	if !ok || entry.UserID != userID {
		return models.WaterIntakeEntry{}, errs.NotFound("water_intakes.delete", "water intake entry %s for user %d", id, userID)
	}
	delete(w.entries, id)
	return entry, nil
}

// Catalog -------------------------------------------------------------------

// Catalog is an in-memory meal catalog seeded with Put.
type Catalog struct {
	mu    sync.RWMutex
	meals map[int64]models.MealNutritionFacts
}

// Put adds or replaces catalog meals.
func (c *Catalog) Put(meals ...models.MealNutritionFacts) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, meal := range meals {
		c.meals[meal.MealID] = meal
	}
}

// GetByID returns the nutrition facts of a meal, or ErrNotFound.
func (c *Catalog) GetByID(_ context.Context, mealID int64) (models.MealNutritionFacts, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	meal, ok := c.meals[mealID]
	if !ok {
		return models.MealNutritionFacts{}, errs.NotFound("meals.get", "meal %d", mealID)
	}
	return meal, nil
}

// Summaries -----------------------------------------------------------------

type summaryKey struct {
	userID int64
	date   string
}

func keyOf(userID int64, date time.Time) summaryKey {
	return summaryKey{userID: userID, date: models.FormatDate(date)}
}

// Summaries holds one summary per user and calendar date.
type Summaries struct {
	mu   sync.RWMutex
	rows map[summaryKey]models.DailyNutritionSummary
}

// GetByUserAndDate returns the user's summary of one date, or ErrNotFound.
func (s *Summaries) GetByUserAndDate(_ context.Context, userID int64, date time.Time) (models.DailyNutritionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[keyOf(userID, date)]
	if !ok {
		return models.DailyNutritionSummary{}, errs.NotFound("daily_summaries.get", "summary for user %d on %s", userID, models.FormatDate(date))
	}
	return row, nil
}

// GetByUserAndDateRange lists the user's summaries within [start, end], oldest first.
func (s *Summaries) GetByUserAndDateRange(_ context.Context, userID int64, start, end time.Time) ([]models.DailyNutritionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.DailyNutritionSummary, 0)
	for key, row := range s.rows {
		if key.userID == userID && inRange(row.Date, start, end) {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// Create inserts a new summary; an existing (user, date) row is a persistence error.
func (s *Summaries) Create(_ context.Context, summary models.DailyNutritionSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(summary.UserID, summary.Date)
	if _, exists := s.rows[key]; exists {
		return errs.Persistence("daily_summaries.create", errDuplicate(key.date))
	}
	s.rows[key] = summary
	return nil
}

// Update replaces an existing summary; a missing row is ErrNotFound.
func (s *Summaries) Update(_ context.Context, summary models.DailyNutritionSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(summary.UserID, summary.Date)
	if _, exists := s.rows[key]; !exists {
		return errs.NotFound("daily_summaries.update", "summary for user %d on %s", summary.UserID, key.date)
	}
	s.rows[key] = summary
	return nil
}

type errDuplicate string

func (e errDuplicate) Error() string {
	return "duplicate key " + string(e)
}
