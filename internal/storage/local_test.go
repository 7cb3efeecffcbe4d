package storage_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dangerclosesec/onboarding/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestLocalStorage_SaveImage(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir(), "/media/", 1024)
	require.NoError(t, err)
	ctx := context.Background()

	rel, err := s.SaveImage(ctx, "headshots", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "headshots/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))
	assert.Equal(t, "/media/"+rel, s.URL(rel))

	f, err := s.Open(rel)
	require.NoError(t, err)
	data, _ := io.ReadAll(f)
	f.Close()
	assert.Equal(t, pngHeader, data)

	require.NoError(t, s.Delete(rel))
	require.NoError(t, s.Delete(rel), "deleting twice is fine")
}

func TestLocalStorage_Rejections(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir(), "/media", 16)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.SaveImage(ctx, "logos", strings.NewReader("just some text"))
	assert.ErrorIs(t, err, storage.ErrNotImage)

	_, err = s.SaveImage(ctx, "logos", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, storage.ErrTooLarge)

	_, err = s.SaveImage(ctx, "../etc", bytes.NewReader(pngHeader[:8]))
	assert.ErrorIs(t, err, storage.ErrInvalidPath)

	assert.Equal(t, "", s.URL(""))
}
