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

// MealLogRepository stores meal log entries in the meal_logs collection.
type MealLogRepository struct {
	coll *mongo.Collection
}

// Create inserts a new meal log entry.
func (r *MealLogRepository) Create(ctx context.Context, entry models.MealLogEntry) error {
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return errs.Persistence("meal_logs.create", err)
	}
	return nil
}

// GetByUserAndDate lists the user's meal log entries of one date.
func (r *MealLogRepository) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]models.MealLogEntry, error) {
	return r.GetByUserAndDateRange(ctx, userID, date, date)
}

// GetByUserAndDateRange lists the user's meal log entries within [start, end].
func (r *MealLogRepository) GetByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]models.MealLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "consumed_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, userDateFilter("consumed_on", userID, start, end), opts)
	if err != nil {
		return nil, errs.Persistence("meal_logs.find", err)
	}

	entries := make([]models.MealLogEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, errs.Persistence("meal_logs.decode", err)
	}
	return entries, nil
}

// Delete removes a meal log entry by id regardless of owner.
func (r *MealLogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.Persistence("meal_logs.delete", err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("meal_logs.delete", "meal log entry %s", id)
	}
	return nil
}

// DeleteByUser removes a meal log entry only if it belongs to userID and returns it.
func (r *MealLogRepository) DeleteByUser(ctx context.Context, userID int64, id string) (models.MealLogEntry, error) {
	var entry models.MealLogEntry
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MealLogEntry{}, errs.NotFound("meal_logs.delete", "meal log entry %s for user %d", id, userID)
	}
	if err != nil {
		return models.MealLogEntry{}, errs.Persistence("meal_logs.delete", err)
	}
	return entry, nil
}
