package cache

import (
	"context"
	"testing"
	"time"

	"github.com/proteinscan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(name string) *domain.ProductRecord {
	return &domain.ProductRecord{Name: name, Barcode: "748927022259", Score: 85}
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "product:barcode:748927022259", testRecord("Whey"), time.Minute))

	got, err := c.Get(ctx, "product:barcode:748927022259")
	require.NoError(t, err)
	assert.Equal(t, "Whey", got.Name)
	assert.Equal(t, 85, got.Score)
}

func TestMemoryCache_GetMiss(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_SetNilRecord(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	err := c.Set(context.Background(), "key", nil, time.Minute)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", testRecord("Whey"), 10*time.Millisecond))

	_, err := c.Get(ctx, "key")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = c.Get(ctx, "key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	exists, err := c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	original := testRecord("Whey")
	require.NoError(t, c.Set(ctx, "key", original, time.Minute))

	first, err := c.Get(ctx, "key")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "Whey", second.Name, "cached state must not be externally mutable")
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", testRecord("Whey"), time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	// Deleting again is fine.
	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestMemoryCache_Exists(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	exists, err := c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, c.Set(ctx, "key", testRecord("Whey"), time.Minute))

	exists, err = c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", testRecord("A"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", testRecord("B"), time.Minute))
	assert.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewMemoryCache()
	c.Close()
	c.Close()
}
