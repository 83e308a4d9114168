package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	mealLogsCollection     = "meal_logs"
	waterIntakesCollection = "water_intakes"
	mealsCollection        = "meals"
	summariesCollection    = "daily_summaries"
)

// Store owns the MongoDB connection and vends the collection-backed repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger

	MealLogs  *MealLogRepository
	Water     *WaterIntakeRepository
	Catalog   *MealCatalogRepository
	Summaries *DailySummaryRepository
}

// NewStore connects to MongoDB, verifies the connection and ensures indexes.
func NewStore(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	store := &Store{
		client:    client,
		db:        db,
		logger:    logger,
		MealLogs:  &MealLogRepository{coll: db.Collection(mealLogsCollection)},
		Water:     &WaterIntakeRepository{coll: db.Collection(waterIntakesCollection)},
		Catalog:   &MealCatalogRepository{coll: db.Collection(mealsCollection)},
		Summaries: &DailySummaryRepository{coll: db.Collection(summariesCollection)},
	}

	if err := store.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("mongodb store ready", zap.String("database", dbName))
	return store, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		mealLogsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "consumed_on", Value: 1}}},
		},
		waterIntakesCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "consumed_on", Value: 1}}},
		},
		mealsCollection: {
			{Keys: bson.D{{Key: "meal_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		summariesCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
		s.logger.Debug("indexes ensured", zap.String("collection", name))
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func userDateFilter(field string, userID int64, start, end time.Time) bson.M {
	if start.Equal(end) {
		return bson.M{"user_id": userID, field: start}
	}
	return bson.M{"user_id": userID, field: bson.M{"$gte": start, "$lte": end}}
}
