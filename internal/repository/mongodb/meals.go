package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/fittrack/internal/domain/errs"
	"github.com/mamadbah2/fittrack/internal/domain/models"
)

// MealCatalogRepository reads nutrition facts from the meals collection.
// The catalog is maintained elsewhere; this service only reads it.
type MealCatalogRepository struct {
	coll *mongo.Collection
}

// GetByID returns the nutrition facts of a meal, or ErrNotFound.
func (r *MealCatalogRepository) GetByID(ctx context.Context, mealID int64) (models.MealNutritionFacts, error) {
	var meal models.MealNutritionFacts
	err := r.coll.FindOne(ctx, bson.M{"meal_id": mealID}).Decode(&meal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MealNutritionFacts{}, errs.NotFound("meals.get", "meal %d", mealID)
	}
	if err != nil {
		return models.MealNutritionFacts{}, errs.Persistence("meals.get", err)
	}
	return meal, nil
}
