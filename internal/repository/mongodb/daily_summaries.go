package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
)

// DailySummaryRepository stores one summary document per (user_id, date).
type DailySummaryRepository struct {
	coll *mongo.Collection
}

// GetByUserAndDate returns the user's summary of one date, or ErrNotFound.
func (r *DailySummaryRepository) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (models.DailyNutritionSummary, error) {
	var summary models.DailyNutritionSummary
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "date": date}).Decode(&summary)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyNutritionSummary{}, errs.NotFound("daily_summaries.get", "summary for user %d on %s", userID, models.FormatDate(date))
	}
	if err != nil {
		return models.DailyNutritionSummary{}, errs.Persistence("daily_summaries.get", err)
	}
	return summary, nil
}

// GetByUserAndDateRange lists the user's summaries within [start, end], oldest first.
func (r *DailySummaryRepository) GetByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]models.DailyNutritionSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, userDateFilter("date", userID, start, end), opts)
	if err != nil {
		return nil, errs.Persistence("daily_summaries.find", err)
	}

	summaries := make([]models.DailyNutritionSummary, 0)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, errs.Persistence("daily_summaries.decode", err)
	}
	return summaries, nil
}

// Create inserts a new summary; an existing (user, date) row is a persistence error.
func (r *DailySummaryRepository) Create(ctx context.Context, summary models.DailyNutritionSummary) error {
	if _, err := r.coll.InsertOne(ctx, summary); err != nil {
		return errs.Persistence("daily_summaries.create", err)
	}
	return nil
}

// Update replaces an existing summary; a missing row is ErrNotFound.
func (r *DailySummaryRepository) Update(ctx context.Context, summary models.DailyNutritionSummary) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"user_id": summary.UserID, "date": summary.Date}, summary)
	if err != nil {
		return errs.Persistence("daily_summaries.update", err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("daily_summaries.update", "summary for user %d on %s", summary.UserID, models.FormatDate(summary.Date))
	}
	return nil
}
