package images

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s, err := NewFSStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "a.png", "image/png", []byte("png-bytes")))

	obj, err := s.Get(ctx, "a.png")
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(9), obj.Size)

	require.NoError(t, s.Delete(ctx, "a.png"))
	_, err = os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Delete(ctx, "a.png"))
}

func TestFSStore_Missing(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "nope.gif")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFSStore_InvalidKey(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.ErrorIs(t, s.Put(ctx, "../x.png", "image/png", nil), ErrInvalidKey)
	_, err = s.Get(ctx, "a/b")
	require.ErrorIs(t, err, ErrInvalidKey)
	require.ErrorIs(t, s.Delete(ctx, ""), ErrInvalidKey)
}
