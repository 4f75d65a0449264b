package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"commerce-admin-core/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStore_RoundTrip(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "http://localhost:8080", zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	stored, err := store.Save(ctx, "receipt.pdf", "application/pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, stored.Key)
	require.Contains(t, stored.Key, "receipt.pdf")
	require.Equal(t, "http://localhost:8080/api/v1/uploads/"+stored.Key, stored.URL)
	require.EqualValues(t, len("pdf-bytes"), stored.Size)

	rc, err := store.Open(ctx, stored.Key)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "pdf-bytes", string(content))
}

func TestLocalFileStore_UniqueKeys(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "http://localhost:8080", zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := store.Save(ctx, "logo.png", "image/png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "logo.png", "image/png", strings.NewReader("b"))
	require.NoError(t, err)
	require.NotEqual(t, first.Key, second.Key, "same filename must not collide")
}

func TestLocalFileStore_OpenMissing(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "http://localhost:8080", zerolog.Nop())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "does-not-exist")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLocalFileStore_Delete(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "http://localhost:8080", zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	stored, err := store.Save(ctx, "tmp.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, stored.Key))

	_, err = store.Open(ctx, stored.Key)
	require.True(t, errors.Is(err, domain.ErrNotFound))

	err = store.Delete(ctx, stored.Key)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLocalFileStore_KeyCannotEscapeBaseDir(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "http://localhost:8080", zerolog.Nop())
	require.NoError(t, err)

	stored, err := store.Save(context.Background(), "../../etc/passwd", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	require.NotContains(t, stored.Key, "/")
	require.NotContains(t, stored.Key, "..")
}
