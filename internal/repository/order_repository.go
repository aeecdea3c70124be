package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eatoes/back-office/internal/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// List returns one page of orders newest-first plus the total match
	// count; an empty status means no filter
	List(ctx context.Context, status models.Status, page, pageSize int) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (*models.Order, error)
	Count(ctx context.Context) (int64, error)
	// RevenueExcluding sums totalAmount over all orders not in the given status
	RevenueExcluding(ctx context.Context, status models.Status) (float64, error)
	StatusCounts(ctx context.Context) ([]models.StatusCount, error)
	// TopSellers ranks menu items by quantity sold across orders not
	// Cancelled, joined against the catalog; lines whose menu item no
	// longer exists are excluded
	TopSellers(ctx context.Context, limit int) ([]models.TopSeller, error)
}

// MongoOrderRepository implements OrderRepository backed by MongoDB collections
type MongoOrderRepository struct {
	collection         *mongo.Collection
	menuCollectionName string
}

// NewMongoOrderRepository creates an order repository over the given
// collection. menuCollectionName is needed for the top-sellers lookup.
func NewMongoOrderRepository(collection *mongo.Collection, menuCollectionName string) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection:         collection,
		menuCollectionName: menuCollectionName,
	}
}

func (r *MongoOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *MongoOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *MongoOrderRepository) List(ctx context.Context, status models.Status, page, pageSize int) ([]models.Order, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, total, nil
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": nowUTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &order, nil
}

func (r *MongoOrderRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MongoOrderRepository) RevenueExcluding(ctx context.Context, status models.Status) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": status}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_amount"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (r *MongoOrderRepository) StatusCounts(ctx context.Context) ([]models.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate status counts: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []models.StatusCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}
	return counts, nil
}

func (r *MongoOrderRepository) TopSellers(ctx context.Context, limit int) ([]models.TopSeller, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": models.StatusCancelled}}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$items.menu_item_id",
			"totalQuantity": bson.M{"$sum": "$items.quantity"},
			"totalRevenue": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$items.price_at_order", "$items.quantity"},
			}},
		}}},
		// The lookup + unwind drops lines whose menu item was deleted
		{{Key: "$lookup", Value: bson.M{
			"from":         r.menuCollectionName,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "menuItem",
		}}},
		{{Key: "$unwind", Value: "$menuItem"}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"name":          "$menuItem.name",
			"category":      "$menuItem.category",
			"price":         "$menuItem.price",
			"totalQuantity": 1,
			"totalRevenue":  bson.M{"$round": bson.A{"$totalRevenue", 2}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalQuantity", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top sellers: %w", err)
	}
	defer cursor.Close(ctx)

	sellers := []models.TopSeller{}
	if err := cursor.All(ctx, &sellers); err != nil {
		return nil, fmt.Errorf("failed to decode top sellers: %w", err)
	}
	return sellers, nil
}
