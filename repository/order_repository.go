package repository

import (
	"context"
	"errors"

	"github.com/Laib363/E-Commerce-Project/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository defines data-access operations for orders. Orders are only
// ever created and read; no update or delete exists.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// FindByCustomer returns the customer's orders newest first.
	FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error)
}

// MongoOrderRepository implements OrderRepository on the orders collection.
type MongoOrderRepository struct {
	col *mongo.Collection
}

// NewMongoOrderRepository creates a new MongoOrderRepository.
func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MongoOrderRepository) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{"customer": customerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
