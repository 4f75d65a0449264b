package entity

import (
	"time"

	"commerce-admin-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoDeliveryMethodDoc represents a delivery method in MongoDB
type MongoDeliveryMethodDoc struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	Name                  string             `bson:"name"`
	Code                  string             `bson:"code"`
	Description           string             `bson:"description,omitempty"`
	Price                 float64            `bson:"price"`
	Currency              string             `bson:"currency"`
	EstimatedDeliveryTime string             `bson:"estimatedDeliveryTime,omitempty"`
	IsActive              bool               `bson:"isActive"`
	CreatedAt             time.Time          `bson:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoDeliveryMethodDoc) ToDomain() *domain.DeliveryMethod {
	return &domain.DeliveryMethod{
		ID:                    d.ID.Hex(),
		Name:                  d.Name,
		Code:                  d.Code,
		Description:           d.Description,
		Price:                 d.Price,
		Currency:              domain.Currency(d.Currency),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		IsActive:              d.IsActive,
		CreatedAt:             d.CreatedAt,
	}
}

// MongoDeliveryMethodDocFromDomain converts a domain entity to a MongoDB document
func MongoDeliveryMethodDocFromDomain(method *domain.DeliveryMethod) *MongoDeliveryMethodDoc {
	doc := &MongoDeliveryMethodDoc{
		Name:                  method.Name,
		Code:                  method.Code,
		Description:           method.Description,
		Price:                 method.Price,
		Currency:              string(method.Currency),
		EstimatedDeliveryTime: method.EstimatedDeliveryTime,
		IsActive:              method.IsActive,
		CreatedAt:             method.CreatedAt,
	}

	if method.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(method.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
