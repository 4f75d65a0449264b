package ports

import (
	"context"

	"commerce-admin-core/internal/domain"
)

// AdminRepository defines the interface for admin account persistence.
// Implementations enforce the unique index on email.
type AdminRepository interface {
	// Create persists a new admin and returns it with ID and CreatedAt set.
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)

	// GetByEmail returns the admin with that email, or (nil, nil) when no
	// account matches.
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)

	// GetByID returns the matching admin or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
}
