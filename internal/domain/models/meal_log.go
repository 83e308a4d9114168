package models

import "time"

// MealLogEntry records one meal consumption event. Entries are never updated;
// they are created by LogMeal and removed as whole rows.
type MealLogEntry struct {
	ID                string    `bson:"_id" json:"id"`
	UserID            int64     `bson:"user_id" json:"user_id"`
	MealID            int64     `bson:"meal_id" json:"meal_id"`
	ConsumedAt        time.Time `bson:"consumed_at" json:"consumed_at"`
	ConsumedOn        time.Time `bson:"consumed_on" json:"-"`
	PortionMultiplier float64   `bson:"portion_multiplier" json:"portion_multiplier"`
	Notes             string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}

// DefaultPortionMultiplier is applied when a caller does not provide one.
const DefaultPortionMultiplier = 1.0

// MealNutritionFacts are the per-serving macros of a catalog meal.
type MealNutritionFacts struct {
	MealID             int64   `bson:"meal_id" json:"meal_id"`
	Name               string  `bson:"name,omitempty" json:"name,omitempty"`
	CaloriesPerServing float64 `bson:"calories_per_serving" json:"calories_per_serving"`
	ProteinsPerServing float64 `bson:"proteins_per_serving" json:"proteins_per_serving"`
	CarbsPerServing    float64 `bson:"carbs_per_serving" json:"carbs_per_serving"`
	FatsPerServing     float64 `bson:"fats_per_serving" json:"fats_per_serving"`
	Type               string  `bson:"type,omitempty" json:"type,omitempty"`
}

// MealTypeCount is one bucket of the meal-type frequency histogram.
type MealTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}
