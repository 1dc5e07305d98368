package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

const foodCollection = "food"

// CatalogRepository reads the food catalog. The collection is reference data;
// this service never writes to it.
type CatalogRepository struct {
	coll *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{coll: db.Collection(foodCollection)}
}

type mongoFood struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Nutrition domain.Nutrition   `bson:"nutrition"`
}

func (mf *mongoFood) toDomain() *domain.FoodItem {
	return &domain.FoodItem{
		ID:                  mf.ID.Hex(),
		Name:                mf.Name,
		NutritionPerServing: mf.Nutrition,
	}
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*domain.FoodItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByName looks up a catalog entry by its lower-cased name. The name is
// normalized here as well so callers cannot miss on casing.
func (r *CatalogRepository) FindByName(ctx context.Context, name string) (*domain.FoodItem, error) {
	return r.findOne(ctx, bson.M{"name": strings.ToLower(name)})
}

func (r *CatalogRepository) findOne(ctx context.Context, filter bson.M) (*domain.FoodItem, error) {
	var mf mongoFood
	if err := r.coll.FindOne(ctx, filter).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, fmt.Errorf("find food: %w", err)
	}
	return mf.toDomain(), nil
}
