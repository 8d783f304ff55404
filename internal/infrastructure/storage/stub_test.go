package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage(t *testing.T) {
	ctx := context.Background()
	stub := NewStubObjectStorage()

	t.Run("upload URL includes storage key", func(t *testing.T) {
		url, expiresAt, err := stub.GenerateUploadURL(ctx, "products/abc/images/key.png", "image/png", 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.Contains(url, "products/abc/images/key.png"))
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("download URL includes storage key", func(t *testing.T) {
		url, _, err := stub.GenerateDownloadURL(ctx, "products/abc/images/key.png", 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.Contains(url, "/download/products/abc/images/key.png"))
	})

	t.Run("object always exists", func(t *testing.T) {
		exists, err := stub.ObjectExists(ctx, "any/key")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("empty key rejected everywhere", func(t *testing.T) {
		_, _, err := stub.GenerateUploadURL(ctx, "", "image/png", time.Minute)
		assert.Error(t, err)
		_, _, err = stub.GenerateDownloadURL(ctx, "", time.Minute)
		assert.Error(t, err)
		assert.Error(t, stub.DeleteObject(ctx, ""))
		_, err = stub.ObjectExists(ctx, "")
		assert.Error(t, err)
	})
}
