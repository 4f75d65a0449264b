package entity

import (
	"time"

	"commerce-admin-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoAdminDoc represents an admin account in MongoDB
type MongoAdminDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"passwordHash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoAdminDoc) ToDomain() *domain.Admin {
	return &domain.Admin{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
	}
}

// MongoAdminDocFromDomain converts a domain entity to a MongoDB document
func MongoAdminDocFromDomain(admin *domain.Admin) *MongoAdminDoc {
	doc := &MongoAdminDoc{
		Email:        admin.Email,
		Name:         admin.Name,
		PasswordHash: admin.PasswordHash,
		Role:         admin.Role,
		CreatedAt:    admin.CreatedAt,
	}

	if admin.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(admin.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
