package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

const foodLogsCollection = "food_logs"

// FoodLogRepository persists log entries. The collection is append-only:
// there are no update or delete operations.
type FoodLogRepository struct {
	coll *mongo.Collection
}

func NewFoodLogRepository(db *mongo.Database) *FoodLogRepository {
	return &FoodLogRepository{coll: db.Collection(foodLogsCollection)}
}

type mongoFoodLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	FoodID      string             `bson:"food_id"`
	FoodName    string             `bson:"food_name"`
	Servings    int                `bson:"servings"`
	Calories    float64            `bson:"calories"`
	ProteinG    float64            `bson:"protein_g"`
	FatG        float64            `bson:"fat_g"`
	CarbsG      float64            `bson:"carbs_g"`
	ServingSize string             `bson:"serving_size"`
	ImageURL    string             `bson:"image_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (ml *mongoFoodLog) toDomain() *domain.FoodLogEntry {
	return &domain.FoodLogEntry{
		ID:       ml.ID.Hex(),
		UserID:   ml.UserID,
		FoodID:   ml.FoodID,
		FoodName: ml.FoodName,
		Servings: ml.Servings,
		Nutrition: domain.Nutrition{
			Calories: ml.Calories,
			ProteinG: ml.ProteinG,
			FatG:     ml.FatG,
			CarbsG:   ml.CarbsG,
		},
		ServingSize: ml.ServingSize,
		ImageURL:    ml.ImageURL,
		CreatedAt:   ml.CreatedAt.UTC(),
	}
}

func (r *FoodLogRepository) Insert(ctx context.Context, entry *domain.FoodLogEntry) (*domain.FoodLogEntry, error) {
	doc := mongoFoodLog{
		UserID:      entry.UserID,
		FoodID:      entry.FoodID,
		FoodName:    entry.FoodName,
		Servings:    entry.Servings,
		Calories:    entry.Calories,
		ProteinG:    entry.ProteinG,
		FatG:        entry.FatG,
		CarbsG:      entry.CarbsG,
		ServingSize: entry.ServingSize,
		ImageURL:    entry.ImageURL,
		CreatedAt:   entry.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert food log: %w", err)
	}

	saved := *entry
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		saved.ID = oid.Hex()
	}
	return &saved, nil
}

func (r *FoodLogRepository) FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.FoodLogEntry, error) {
	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": start, "$lte": end},
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find food logs: %w", err)
	}
	return decodeEntries(ctx, cur)
}

func (r *FoodLogRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.FoodLogEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find recent food logs: %w", err)
	}
	return decodeEntries(ctx, cur)
}

// EnsureIndexes creates the compound index backing range and recency queries.
func (r *FoodLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeEntries(ctx context.Context, cur *mongo.Cursor) ([]*domain.FoodLogEntry, error) {
	defer cur.Close(ctx)

	var entries []*domain.FoodLogEntry
	for cur.Next(ctx) {
		var ml mongoFoodLog
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode food log: %w", err)
		}
		entries = append(entries, ml.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate food logs: %w", err)
	}
	return entries, nil
}
