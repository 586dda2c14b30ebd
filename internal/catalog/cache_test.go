package catalog

import (
	"context"
	"testing"
	"time"

	"shop_system/internal/dbtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(NewStore(dbtest.New(t)), rdb, time.Minute), mr
}

func TestCacheCountIsReadThroughAndInvalidated(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	cat, err := c.CreateCategory(ctx, "Books")
	require.NoError(t, err)

	total, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.True(t, mr.Exists(countKey))

	_, err = c.CreateProduct(ctx, validInput(cat.ID))
	require.NoError(t, err)
	assert.False(t, mr.Exists(countKey), "create invalidates the count")

	total, err = c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	page, err := c.Page(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestCacheServesStaleCountUntilExpiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	require.NoError(t, mr.Set(countKey, "7"))
	mr.SetTTL(countKey, time.Minute)

	total, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)

	mr.FastForward(2 * time.Minute)
	total, err = c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestCacheCategories(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	_, err := c.CreateCategory(ctx, "Books")
	require.NoError(t, err)

	first, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, mr.Exists(categoriesKey))

	_, err = c.CreateCategory(ctx, "Games")
	require.NoError(t, err)
	assert.False(t, mr.Exists(categoriesKey))

	second, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestCacheWithoutRedisFallsThrough(t *testing.T) {
	c := NewCache(NewStore(dbtest.New(t)), nil, time.Minute)
	ctx := context.Background()
	_, err := c.CreateCategory(ctx, "Books")
	require.NoError(t, err)

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	total, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}
