package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	key, err := CleanKey("media/2026/01/a.png")
	require.NoError(t, err)
	assert.Equal(t, "media/2026/01/a.png", key)

	key, err = CleanKey("/media/../media/b.png")
	require.NoError(t, err)
	assert.Equal(t, "media/b.png", key)

	key, err = CleanKey("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key, "traversal is clamped to the root")

	_, err = CleanKey("")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewStorage(ctx, Config{Type: "local", BasePath: t.TempDir(), BaseURL: "/api/v1/files/"})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "media/x.txt", bytes.NewBufferString("hello"), "text/plain"))

	ok, err := s.Exists(ctx, "media/x.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	size, err := s.GetSize(ctx, "media/x.txt")
	require.NoError(t, err)
	assert.EqualValues(t, 5, size)

	rc, err := s.Get(ctx, "media/x.txt")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "hello", string(body))

	url, err := s.GetURL(ctx, "media/x.txt")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/media/x.txt", url)

	require.NoError(t, s.Delete(ctx, "media/x.txt"))
	require.NoError(t, s.Delete(ctx, "media/x.txt"), "deleting twice is fine")

	_, err = s.Get(ctx, "media/x.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewStorage_R2NeedsAccount(t *testing.T) {
	_, err := NewStorage(context.Background(), Config{Type: "cloudflare_r2", Bucket: "b"})
	assert.Error(t, err)

	_, err = NewStorage(context.Background(), Config{Type: "ftp"})
	assert.Error(t, err)
}
