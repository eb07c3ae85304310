// Package cache provides read-through Redis caching for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"orderup_backend/internal/feature/catalog/domain/entity"
	"orderup_backend/internal/feature/catalog/usecase"
)

// LookupObserver is notified of every cache lookup. It may be nil.
type LookupObserver interface {
	CacheLookup(hit bool)
}

// CachingFoodItemRepository decorates a FoodItemRepository with Redis caching.
// With a nil client every call goes straight to the inner repository.
type CachingFoodItemRepository struct {
	inner     usecase.FoodItemRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	observer  LookupObserver
}

var _ usecase.FoodItemRepository = (*CachingFoodItemRepository)(nil)

// NewCachingFoodItemRepository wraps inner. ttl defaults to 5 minutes and namespace to "catalog".
func NewCachingFoodItemRepository(rdb *redis.Client, ttl time.Duration, inner usecase.FoodItemRepository, namespace string, observer LookupObserver) *CachingFoodItemRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "catalog"
	}
	return &CachingFoodItemRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		observer:  observer,
	}
}

func (c *CachingFoodItemRepository) List(ctx context.Context, f entity.Filter) ([]entity.FoodItem, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, f)
	}
	key := c.listKey(f)
	var out []entity.FoodItem
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx, f)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

func (c *CachingFoodItemRepository) FindByID(ctx context.Context, id uint) (*entity.FoodItem, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}
	key := c.itemKey(id)
	var out entity.FoodItem
	if c.get(ctx, key, &out) {
		return &out, nil
	}

	item, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, item)
	return item, nil
}

func (c *CachingFoodItemRepository) Create(ctx context.Context, item *entity.FoodItem) error {
	if err := c.inner.Create(ctx, item); err != nil {
		return err
	}
	c.invalidateLists(ctx)
	return nil
}

func (c *CachingFoodItemRepository) Save(ctx context.Context, item *entity.FoodItem) error {
	if err := c.inner.Save(ctx, item); err != nil {
		return err
	}
	return c.InvalidateFoodItem(ctx, item.ID)
}

func (c *CachingFoodItemRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	return c.InvalidateFoodItem(ctx, id)
}

// InvalidateFoodItem drops the cached item and every cached listing. It is best effort and never fails.
func (c *CachingFoodItemRepository) InvalidateFoodItem(ctx context.Context, id uint) error {
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, c.itemKey(id)).Err(); err != nil {
		slog.Warn("catalog cache invalidation failed", "food_item_id", id, "error", err)
	}
	c.invalidateLists(ctx)
	return nil
}

func (c *CachingFoodItemRepository) invalidateLists(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":list:*"); err != nil {
		slog.Warn("catalog list cache invalidation failed", "error", err)
	}
}

// get decodes key into dst and reports a hit. Corrupted entries are deleted.
func (c *CachingFoodItemRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	hit := err == nil && len(b) > 0
	if hit {
		if err := json.Unmarshal(b, dst); err != nil {
			_ = c.rdb.Del(ctx, key).Err()
			hit = false
		}
	}
	if c.observer != nil {
		c.observer.CacheLookup(hit)
	}
	return hit
}

func (c *CachingFoodItemRepository) set(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

func (c *CachingFoodItemRepository) itemKey(id uint) string {
	return fmt.Sprintf("%s:item:%d", c.namespace, id)
}

func (c *CachingFoodItemRepository) listKey(f entity.Filter) string {
	return fmt.Sprintf("%s:list:%s:%s:%t",
		c.namespace,
		safe(f.Category),
		safe(strings.ToLower(f.Search)),
		f.AvailableOnly,
	)
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func (c *CachingFoodItemRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}

// safe escapes characters that are problematic for Redis keys and glob patterns.
func safe(s string) string {
	return strings.NewReplacer(" ", "_", ":", "_", "*", "_", "?", "_", "[", "_", "]", "_").Replace(s)
}
