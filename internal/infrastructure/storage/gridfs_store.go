package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"commerce-admin-core/internal/domain"
	"commerce-admin-core/internal/ports"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSFileStore implements FileStore on a MongoDB GridFS bucket. It plays
// the cloud-bucket role when no local disk is available to the deployment.
//
// The v1 driver's gridfs API carries no context; deadlines from the caller's
// context are applied through the bucket's read/write deadlines instead.
type GridFSFileStore struct {
	bucket  *gridfs.Bucket
	baseURL string
	logger  zerolog.Logger
}

var _ ports.FileStore = (*GridFSFileStore)(nil)

// NewGridFSFileStore creates a GridFS-backed file store on the given database.
func NewGridFSFileStore(db *mongo.Database, baseURL string, logger zerolog.Logger) (*GridFSFileStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("uploads"))
	if err != nil {
		return nil, fmt.Errorf("failed to create gridfs bucket: %w", err)
	}
	return &GridFSFileStore{
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Save streams the content into the bucket under a uuid-prefixed key.
func (s *GridFSFileStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (*domain.StoredFile, error) {
	key := buildKey(filename)

	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set gridfs write deadline: %w", err)
		}
	}

	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	stream, err := s.bucket.OpenUploadStream(key, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs upload stream: %w", err)
	}

	size, err := io.Copy(stream, r)
	if err != nil {
		stream.Close()
		return nil, fmt.Errorf("failed to write gridfs upload: %w", err)
	}
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish gridfs upload: %w", err)
	}

	s.logger.Debug().Str("key", key).Int64("size", size).Msg("Wrote upload to gridfs")

	return &domain.StoredFile{
		Key:         key,
		URL:         s.baseURL + "/api/v1/uploads/" + key,
		ContentType: contentType,
		Size:        size,
		UploadedAt:  time.Now(),
	}, nil
}

// Open returns a download stream for the stored object.
func (s *GridFSFileStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set gridfs read deadline: %w", err)
		}
	}

	stream, err := s.bucket.OpenDownloadStreamByName(key)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, fmt.Errorf("%w: upload %s", domain.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs download stream: %w", err)
	}
	return stream, nil
}

// Delete removes the stored object and its chunks.
func (s *GridFSFileStore) Delete(ctx context.Context, key string) error {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("failed to set gridfs write deadline: %w", err)
		}
	}

	cursor, err := s.bucket.Find(bson.M{"filename": key})
	if err != nil {
		return fmt.Errorf("failed to find gridfs file: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return fmt.Errorf("%w: upload %s", domain.ErrNotFound, key)
	}

	var file struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.Decode(&file); err != nil {
		return fmt.Errorf("failed to decode gridfs file: %w", err)
	}

	if err := s.bucket.Delete(file.ID); err != nil {
		return fmt.Errorf("failed to delete gridfs file: %w", err)
	}
	return nil
}
