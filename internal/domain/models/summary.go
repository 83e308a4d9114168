package models

import (
	"strconv"
	"time"
)

// DailyNutritionSummary is the denormalized aggregate for one user on one
// calendar date. Macro fields are derived from meal logs, WaterIntakeMl from
// water logs; both are rebuilt from the full log on every recompute.
type DailyNutritionSummary struct {
	UserID             int64     `bson:"user_id" json:"user_id"`
	Date               time.Time `bson:"date" json:"date"`
	TotalCalories      float64   `bson:"total_calories" json:"total_calories"`
	TotalProteins      float64   `bson:"total_proteins" json:"total_proteins"`
	TotalCarbohydrates float64   `bson:"total_carbohydrates" json:"total_carbohydrates"`
	TotalFats          float64   `bson:"total_fats" json:"total_fats"`
	MealsConsumed      int       `bson:"meals_consumed" json:"meals_consumed"`
	WaterIntakeMl      int       `bson:"water_intake_ml" json:"water_intake_ml"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// RangeAverage is the per-field mean of the summary rows that exist inside an
// inclusive date interval. DaysWithData is the denominator.
type RangeAverage struct {
	UserID             int64     `json:"user_id"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	DaysWithData       int       `json:"days_with_data"`
	TotalCalories      float64   `json:"total_calories"`
	TotalProteins      float64   `json:"total_proteins"`
	TotalCarbohydrates float64   `json:"total_carbohydrates"`
	TotalFats          float64   `json:"total_fats"`
	MealsConsumed      float64   `json:"meals_consumed"`
	WaterIntakeMl      float64   `json:"water_intake_ml"`
}

// SummaryKey identifies the summary row of userID on date. Both engines
// serialize their read-modify-write of that row on this key.
func SummaryKey(userID int64, date time.Time) string {
	return strconv.FormatInt(userID, 10) + ":" + FormatDate(date)
}
