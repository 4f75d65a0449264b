package ports

import (
	"context"
	"io"

	"commerce-admin-core/internal/domain"
)

// FileStore defines the interface for upload storage backends.
type FileStore interface {
	// Save streams r into the backend under a fresh key derived from
	// filename and returns the stored file descriptor.
	Save(ctx context.Context, filename, contentType string, r io.Reader) (*domain.StoredFile, error)

	// Open returns a reader for the stored object or domain.ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored object or returns domain.ErrNotFound.
	Delete(ctx context.Context, key string) error
}
