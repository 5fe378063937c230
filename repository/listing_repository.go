package repository

import (
	"context"
	"errors"

	"github.com/Laib363/E-Commerce-Project/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListingRepository defines data-access operations for product listings.
type ListingRepository interface {
	FindAll(ctx context.Context) ([]models.Listing, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error)
	// FindByIDs resolves ids to listings, preserving the input order and
	// silently skipping ids that no longer exist.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Listing, error)
	Create(ctx context.Context, listing *models.Listing) error
	// Update replaces the mutable fields (title, description, price, image).
	// The author reference is never touched.
	Update(ctx context.Context, id primitive.ObjectID, listing *models.Listing) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoListingRepository implements ListingRepository on the listings
// collection.
type MongoListingRepository struct {
	col *mongo.Collection
}

// NewMongoListingRepository creates a new MongoListingRepository.
func NewMongoListingRepository(db *mongo.Database) ListingRepository {
	return &MongoListingRepository{col: db.Collection("listings")}
}

func (r *MongoListingRepository) FindAll(ctx context.Context) ([]models.Listing, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *MongoListingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	var listing models.Listing
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *MongoListingRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Listing, error) {
	if len(ids) == 0 {
		return []models.Listing{}, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Listing
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Listing, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}

	listings := make([]models.Listing, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

func (r *MongoListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, listing)
	return err
}

func (r *MongoListingRepository) Update(ctx context.Context, id primitive.ObjectID, listing *models.Listing) error {
	update := bson.M{"$set": bson.M{
		"title":       listing.Title,
		"description": listing.Description,
		"price":       listing.Price,
		"image":       listing.Image,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoListingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
