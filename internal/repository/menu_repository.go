package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eatoes/back-office/internal/models"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrOrderNotFound    = errors.New("order not found")
)

// MenuRepository defines the interface for menu item data access
type MenuRepository interface {
	// List returns items newest-first; an empty category means no filter
	List(ctx context.Context, category models.Category) ([]models.MenuItem, error)
	// Search runs a full-text match over name and ingredients, degrading
	// to a case-insensitive substring match on name when the text index
	// is unavailable
	Search(ctx context.Context, query string) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	// FindByName matches the exact name case-insensitively
	FindByName(ctx context.Context, name string) (*models.MenuItem, error)
	Insert(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

// MongoMenuRepository implements MenuRepository backed by a MongoDB collection
type MongoMenuRepository struct {
	collection *mongo.Collection
}

// NewMongoMenuRepository creates a menu repository over the given collection
func NewMongoMenuRepository(collection *mongo.Collection) *MongoMenuRepository {
	return &MongoMenuRepository{collection: collection}
}

func (r *MongoMenuRepository) List(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return r.find(ctx, filter)
}

func (r *MongoMenuRepository) Search(ctx context.Context, query string) ([]models.MenuItem, error) {
	items, err := r.find(ctx, bson.M{"$text": bson.M{"$search": query}})
	if err == nil {
		return items, nil
	}

	// Text search fails when the index is missing; degrade to a
	// case-insensitive substring match on the name instead of erroring.
	return r.find(ctx, bson.M{"name": bson.M{
		"$regex":   regexp.QuoteMeta(query),
		"$options": "i",
	}})
}

func (r *MongoMenuRepository) find(ctx context.Context, filter bson.M) ([]models.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}
	return items, nil
}

func (r *MongoMenuRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &item, nil
}

func (r *MongoMenuRepository) FindByName(ctx context.Context, name string) (*models.MenuItem, error) {
	filter := bson.M{"name": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(name) + "$",
		"$options": "i",
	}}

	var item models.MenuItem
	err := r.collection.FindOne(ctx, filter).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to find menu item by name: %w", err)
	}
	return &item, nil
}

func (r *MongoMenuRepository) Insert(ctx context.Context, item *models.MenuItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *MongoMenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *MongoMenuRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *MongoMenuRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MongoMenuRepository) CountAvailable(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"is_available": true})
}
