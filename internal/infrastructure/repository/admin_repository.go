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

// MongoAdminRepository implements AdminRepository using MongoDB
type MongoAdminRepository struct {
	collection *mongo.Collection
}

// NewMongoAdminRepository creates a new MongoDB admin repository and declares
// the unique index on email.
func NewMongoAdminRepository(ctx context.Context, db *mongo.Database) (*MongoAdminRepository, error) {
	collection := db.Collection("admins")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("failed to create admin index: %w", err)
	}

	return &MongoAdminRepository{collection: collection}, nil
}

// Create persists a new admin account
func (r *MongoAdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	doc := entity.MongoAdminDocFromDomain(admin)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("%w: admin with that email", domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return doc.ToDomain(), nil
}

// GetByEmail retrieves an admin by email, or (nil, nil) when no account matches
func (r *MongoAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var doc entity.MongoAdminDoc
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return doc.ToDomain(), nil
}

// GetByID retrieves an admin by id
func (r *MongoAdminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: admin %s", domain.ErrNotFound, id)
	}

	var doc entity.MongoAdminDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: admin %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return doc.ToDomain(), nil
}
