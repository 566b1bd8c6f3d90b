package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casecraft/caselens/storage"
)

func newTestCache(t *testing.T) storage.VectorCache {
	t.Helper()
	cache, backend, err := NewMemoryVectorCache()
	require.NoError(t, err)
	t.Cleanup(func() {
		cache.Close()
		backend.Close()
	})
	return cache
}

func TestNewVectorCache_RequiresBackend(t *testing.T) {
	_, err := NewVectorCache(nil)
	assert.ErrorIs(t, err, storage.ErrBackendRequired)
}

func TestVectorCache_PutGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	vector := []float32{0.1, 0.2, 0.3}
	require.NoError(t, cache.PutVector(ctx, "embeddinggemma", "network effects", vector))

	got, err := cache.GetVector(ctx, "embeddinggemma", "network effects")
	require.NoError(t, err)
	assert.Equal(t, vector, got)
}

func TestVectorCache_MissingReturnsNil(t *testing.T) {
	cache := newTestCache(t)

	got, err := cache.GetVector(context.Background(), "embeddinggemma", "never stored")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVectorCache_Overwrite(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.PutVector(ctx, "m", "text", []float32{1}))
	require.NoError(t, cache.PutVector(ctx, "m", "text", []float32{2}))

	got, err := cache.GetVector(ctx, "m", "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, got)

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestVectorCache_ModelsAreIsolated(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.PutVector(ctx, "model-a", "text", []float32{1}))
	require.NoError(t, cache.PutVector(ctx, "model-b", "text", []float32{2}))

	a, err := cache.GetVector(ctx, "model-a", "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, a)

	b, err := cache.GetVector(ctx, "model-b", "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, b)
}

func TestVectorCache_DeleteVectors(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.PutVector(ctx, "model-a", "one", []float32{1}))
	require.NoError(t, cache.PutVector(ctx, "model-a", "two", []float32{2}))
	require.NoError(t, cache.PutVector(ctx, "model-b", "one", []float32{3}))

	deleted, err := cache.DeleteVectors(ctx, "model-a")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	got, err := cache.GetVector(ctx, "model-a", "one")
	require.NoError(t, err)
	assert.Nil(t, got)

	// The other model is untouched.
	got, err = cache.GetVector(ctx, "model-b", "one")
	require.NoError(t, err)
	assert.Equal(t, []float32{3}, got)

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestVectorCache_ClosedBackend(t *testing.T) {
	cache, backend, err := NewMemoryVectorCache()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = cache.GetVector(context.Background(), "m", "text")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = cache.PutVector(context.Background(), "m", "text", []float32{1})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestVectorCache_CancelledContext(t *testing.T) {
	cache := newTestCache(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.GetVector(ctx, "m", "text")
	assert.ErrorIs(t, err, context.Canceled)
}
