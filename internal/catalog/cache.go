package catalog

import (
	"context"
	"time"

	"shop_system/internal/domain"
	"shop_system/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache keys
const (
	categoriesKey = "catalog:categories"
	countKey      = "catalog:products:count"
)

// Cache is a read-through Redis cache in front of a Store. It caches the
// category list and the product count, which makes Count an estimate that
// can lag writes by at most the TTL when invalidation fails. A nil Redis
// client disables caching.
type Cache struct {
	*Store
	rdb *redis.Client
	ttl time.Duration
}

// NewCache wraps store with a Redis cache
func NewCache(store *Store, rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Store: store, rdb: rdb, ttl: ttl}
}

// Categories returns the cached category list, filling it on a miss
func (c *Cache) Categories(ctx context.Context) ([]domain.Category, error) {
	if c.rdb == nil {
		return c.Store.Categories(ctx)
	}
	var categories []domain.Category
	found, err := utils.GetCache(ctx, c.rdb, categoriesKey, &categories)
	if err == nil && found {
		return categories, nil
	}
	if err != nil {
		logrus.WithField("key", categoriesKey).WithError(err).Warn("Redis read failed, continuing with DB")
	}
	categories, err = c.Store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, categoriesKey, categories)
	return categories, nil
}

// Count returns the cached product count, filling it on a miss
func (c *Cache) Count(ctx context.Context) (int64, error) {
	if c.rdb == nil {
		return c.Store.Count(ctx)
	}
	var total int64
	found, err := utils.GetCache(ctx, c.rdb, countKey, &total)
	if err == nil && found {
		return total, nil
	}
	if err != nil {
		logrus.WithField("key", countKey).WithError(err).Warn("Redis read failed, continuing with DB")
	}
	total, err = c.Store.Count(ctx)
	if err != nil {
		return 0, err
	}
	c.set(ctx, countKey, total)
	return total, nil
}

// Page uses the cached count for its totals
func (c *Cache) Page(ctx context.Context, page int) (*PageResult, error) {
	return c.Store.page(ctx, page, c.Count)
}

func (c *Cache) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p, err := c.Store.CreateProduct(ctx, in)
	if err == nil {
		c.invalidate(ctx, countKey)
	}
	return p, err
}

func (c *Cache) DeleteProduct(ctx context.Context, id uint) error {
	err := c.Store.DeleteProduct(ctx, id)
	if err == nil {
		c.invalidate(ctx, countKey)
	}
	return err
}

func (c *Cache) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	cat, err := c.Store.CreateCategory(ctx, name)
	if err == nil {
		c.invalidate(ctx, categoriesKey)
	}
	return cat, err
}

func (c *Cache) UpdateCategory(ctx context.Context, id uint, name string) (*domain.Category, error) {
	cat, err := c.Store.UpdateCategory(ctx, id, name)
	if err == nil {
		c.invalidate(ctx, categoriesKey)
	}
	return cat, err
}

func (c *Cache) DeleteCategory(ctx context.Context, id uint) error {
	err := c.Store.DeleteCategory(ctx, id)
	if err == nil {
		c.invalidate(ctx, categoriesKey)
	}
	return err
}

func (c *Cache) set(ctx context.Context, key string, value any) {
	if err := utils.SetCache(ctx, c.rdb, key, value, c.ttl); err != nil {
		logrus.WithField("key", key).WithError(err).Warn("Failed to cache catalog read")
	}
}

func (c *Cache) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := utils.DeleteCache(ctx, c.rdb, keys...); err != nil {
		logrus.WithField("keys", keys).WithError(err).Warn("Failed to invalidate catalog cache")
	}
}
