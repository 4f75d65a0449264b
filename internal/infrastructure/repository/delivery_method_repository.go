package repository

import (
	"context"
	"fmt"
	"time"

	"commerce-admin-core/internal/domain"
	"commerce-admin-core/internal/infrastructure/repository/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDeliveryMethodRepository implements DeliveryMethodRepository using MongoDB
type MongoDeliveryMethodRepository struct {
	collection *mongo.Collection
}

// NewMongoDeliveryMethodRepository creates a new MongoDB delivery method repository
// and declares the unique indexes on name and code.
func NewMongoDeliveryMethodRepository(ctx context.Context, db *mongo.Database) (*MongoDeliveryMethodRepository, error) {
	collection := db.Collection("delivery_methods")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("failed to create delivery method indexes: %w", err)
	}

	return &MongoDeliveryMethodRepository{collection: collection}, nil
}

// Insert persists a new delivery method
func (r *MongoDeliveryMethodRepository) Insert(ctx context.Context, method *domain.DeliveryMethod) (*domain.DeliveryMethod, error) {
	doc := entity.MongoDeliveryMethodDocFromDomain(method)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("%w: delivery method with that name or code", domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert delivery method: %w", err)
	}

	return doc.ToDomain(), nil
}

// GetByID retrieves a delivery method by id
func (r *MongoDeliveryMethodRepository) GetByID(ctx context.Context, id string) (*domain.DeliveryMethod, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: delivery method %s", domain.ErrNotFound, id)
	}

	var doc entity.MongoDeliveryMethodDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: delivery method %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery method: %w", err)
	}

	return doc.ToDomain(), nil
}

// FindByCode retrieves the delivery method with that code, or (nil, nil)
// when no record matches.
func (r *MongoDeliveryMethodRepository) FindByCode(ctx context.Context, code string) (*domain.DeliveryMethod, error) {
	var doc entity.MongoDeliveryMethodDoc
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find delivery method by code: %w", err)
	}

	return doc.ToDomain(), nil
}

// FindAll retrieves all delivery methods in insertion order
func (r *MongoDeliveryMethodRepository) FindAll(ctx context.Context) ([]*domain.DeliveryMethod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery methods: %w", err)
	}
	defer cursor.Close(ctx)

	var methods []*domain.DeliveryMethod
	for cursor.Next(ctx) {
		var doc entity.MongoDeliveryMethodDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode delivery method: %w", err)
		}
		methods = append(methods, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return methods, nil
}

// Count returns the number of stored delivery methods
func (r *MongoDeliveryMethodRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count delivery methods: %w", err)
	}
	return count, nil
}

// UpdateFields replaces the mutable fields of the stored document.
// ID and createdAt are never touched.
func (r *MongoDeliveryMethodRepository) UpdateFields(ctx context.Context, method *domain.DeliveryMethod) (*domain.DeliveryMethod, error) {
	objID, err := primitive.ObjectIDFromHex(method.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: delivery method %s", domain.ErrNotFound, method.ID)
	}

	update := bson.M{
		"$set": bson.M{
			"name":                  method.Name,
			"code":                  method.Code,
			"description":           method.Description,
			"price":                 method.Price,
			"currency":              string(method.Currency),
			"estimatedDeliveryTime": method.EstimatedDeliveryTime,
			"isActive":              method.IsActive,
			"updatedAt":             time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc entity.MongoDeliveryMethodDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: delivery method %s", domain.ErrNotFound, method.ID)
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("%w: delivery method with that name or code", domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update delivery method: %w", err)
	}

	return doc.ToDomain(), nil
}

// Delete removes a delivery method by id
func (r *MongoDeliveryMethodRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: delivery method %s", domain.ErrNotFound, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete delivery method: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: delivery method %s", domain.ErrNotFound, id)
	}
	return nil
}

// MigrateMissingCurrency backfills the default currency on legacy documents
// that predate the currency field. It is a one-time deployment step run at
// startup, not part of any read path.
func (r *MongoDeliveryMethodRepository) MigrateMissingCurrency(ctx context.Context) (int64, error) {
	filter := bson.M{"$or": []bson.M{
		{"currency": bson.M{"$exists": false}},
		{"currency": ""},
	}}
	update := bson.M{"$set": bson.M{
		"currency":  string(domain.DefaultCurrency),
		"updatedAt": time.Now(),
	}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill currency: %w", err)
	}
	return result.ModifiedCount, nil
}
