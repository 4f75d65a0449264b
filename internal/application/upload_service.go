package application

import (
	"context"
	"fmt"
	"io"

	"commerce-admin-core/internal/domain"
	"commerce-admin-core/internal/ports"

	"github.com/rs/zerolog"
)

// UploadService handles file uploads on top of a pluggable storage backend.
type UploadService struct {
	store   ports.FileStore
	logger  zerolog.Logger
	maxSize int64
}

// NewUploadService creates a new upload service. maxSize caps the accepted
// upload size in bytes.
func NewUploadService(store ports.FileStore, logger zerolog.Logger, maxSize int64) *UploadService {
	return &UploadService{
		store:   store,
		logger:  logger,
		maxSize: maxSize,
	}
}

// Upload persists the file content and returns the stored descriptor.
func (s *UploadService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*domain.StoredFile, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrValidation)
	}
	if size > s.maxSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, s.maxSize)
	}

	stored, err := s.store.Save(ctx, filename, contentType, io.LimitReader(r, s.maxSize))
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info().
		Str("key", stored.Key).
		Int64("size", stored.Size).
		Msg("Stored upload")
	return stored, nil
}

// Fetch opens a stored file for reading.
func (s *UploadService) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key is required", domain.ErrValidation)
	}
	return s.store.Open(ctx, key)
}

// Remove deletes a stored file.
func (s *UploadService) Remove(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: key is required", domain.ErrValidation)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Info().Str("key", key).Msg("Deleted upload")
	return nil
}
