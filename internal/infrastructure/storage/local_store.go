package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"commerce-admin-core/internal/domain"
	"commerce-admin-core/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalFileStore implements FileStore on a local directory.
type LocalFileStore struct {
	baseDir string
	baseURL string
	logger  zerolog.Logger
}

// NewLocalFileStore creates a local file store rooted at baseDir. Stored
// files are served under baseURL.
func NewLocalFileStore(baseDir, baseURL string, logger zerolog.Logger) (ports.FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalFileStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Save writes the content to disk under a uuid-prefixed key.
func (s *LocalFileStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (*domain.StoredFile, error) {
	key := buildKey(filename)

	f, err := os.OpenFile(filepath.Join(s.baseDir, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}

	s.logger.Debug().Str("key", key).Int64("size", size).Msg("Wrote upload to disk")

	return &domain.StoredFile{
		Key:         key,
		URL:         s.baseURL + "/api/v1/uploads/" + key,
		ContentType: contentType,
		Size:        size,
		UploadedAt:  time.Now(),
	}, nil
}

// Open returns a reader for the stored file.
func (s *LocalFileStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: upload %s", domain.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	return f, nil
}

// Delete removes the stored file.
func (s *LocalFileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: upload %s", domain.ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

// buildKey derives a collision-free storage key from the original filename.
// Path separators are stripped so a key can never escape the base directory.
func buildKey(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	name = strings.ReplaceAll(name, " ", "_")
	return uuid.NewString() + "-" + name
}
