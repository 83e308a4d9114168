package models

import "time"

// WaterIntakeEntry records one water intake event.
type WaterIntakeEntry struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     int64     `bson:"user_id" json:"user_id"`
	AmountMl   int       `bson:"amount_ml" json:"amount_ml"`
	ConsumedAt time.Time `bson:"consumed_at" json:"consumed_at"`
	ConsumedOn time.Time `bson:"consumed_on" json:"-"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// DailyWater is one point of the dense hydration history.
type DailyWater struct {
	Date     string `json:"date"`
	AmountMl int    `json:"amount_ml"`
}

// DefaultWaterGoalMl is the hydration goal used until per-user preferences exist.
const DefaultWaterGoalMl = 2000
