package ports

import (
	"context"

	"commerce-admin-core/internal/domain"
)

// DeliveryMethodRepository defines the interface for delivery method persistence.
// Implementations enforce the unique indexes on name and code and surface
// violations as domain.ErrConflict.
type DeliveryMethodRepository interface {
	// Insert persists a new record and returns it with ID and CreatedAt set.
	Insert(ctx context.Context, method *domain.DeliveryMethod) (*domain.DeliveryMethod, error)

	// GetByID returns the matching record or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.DeliveryMethod, error)

	// FindByCode returns the record with that code, or (nil, nil) when no
	// record matches.
	FindByCode(ctx context.Context, code string) (*domain.DeliveryMethod, error)

	// FindAll returns every record in insertion order.
	FindAll(ctx context.Context) ([]*domain.DeliveryMethod, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// UpdateFields replaces the stored document's mutable fields with those
	// of method and returns the persisted record. ID and CreatedAt are never
	// touched. Returns domain.ErrNotFound for an unknown id.
	UpdateFields(ctx context.Context, method *domain.DeliveryMethod) (*domain.DeliveryMethod, error)

	// Delete removes the record or returns domain.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
