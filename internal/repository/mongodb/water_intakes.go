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

// WaterIntakeRepository stores water intake entries in the water_intakes collection.
type WaterIntakeRepository struct {
	coll *mongo.Collection
}

// Create inserts a new water intake entry.
func (r *WaterIntakeRepository) Create(ctx context.Context, entry models.WaterIntakeEntry) error {
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return errs.Persistence("water_intakes.create", err)
	}
	return nil
}

// GetByUserAndDate lists the user's water intake entries of one date.
func (r *WaterIntakeRepository) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]models.WaterIntakeEntry, error) {
	return r.GetByUserAndDateRange(ctx, userID, date, date)
}

// GetByUserAndDateRange lists the user's water intake entries within [start, end].
func (r *WaterIntakeRepository) GetByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]models.WaterIntakeEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "consumed_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, userDateFilter("consumed_on", userID, start, end), opts)
	if err != nil {
		return nil, errs.Persistence("water_intakes.find", err)
	}

	entries := make([]models.WaterIntakeEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, errs.Persistence("water_intakes.decode", err)
	}
	return entries, nil
}

// Delete removes a water intake entry by id regardless of owner.
func (r *WaterIntakeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.Persistence("water_intakes.delete", err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("water_intakes.delete", "water intake entry %s", id)
	}
	return nil
}

// DeleteByUser removes a water intake entry only if it belongs to userID and returns it.
func (r *WaterIntakeRepository) DeleteByUser(ctx context.Context, userID int64, id string) (models.WaterIntakeEntry, error) {
	var entry models.WaterIntakeEntry
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.WaterIntakeEntry{}, errs.NotFound("water_intakes.delete", "water intake entry %s for user %d", id, userID)
	}
	if err != nil {
		return models.WaterIntakeEntry{}, errs.Persistence("water_intakes.delete", err)
	}
	return entry, nil
}
