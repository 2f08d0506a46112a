package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/inventory"
	"storefront/internal/models"
)

func productKey(id string) string {
	return "product:" + id
}

func allProductsKey() string {
	return "products:all"
}

func categoryKey(c models.Category) string {
	return fmt.Sprintf("products:category:%s", c)
}

// CatalogCache puts a cache-aside layer in front of registry reads. With a
// nil Redis cache every read goes straight to the registry, so the HTTP
// layer does not care whether Redis is configured.
type CatalogCache struct {
	registry *inventory.Registry
	cache    *RedisCache
	log      *zap.SugaredLogger
}

func NewCatalogCache(registry *inventory.Registry, cache *RedisCache, log *zap.SugaredLogger) *CatalogCache {
	return &CatalogCache{registry: registry, cache: cache, log: log}
}

func (c *CatalogCache) List(ctx context.Context) []*models.Product {
	if c.cache == nil {
		return c.registry.List()
	}

	var products []*models.Product
	if err := c.cache.Get(ctx, allProductsKey(), &products); err == nil {
		return products
	}

	products = c.registry.List()
	if err := c.cache.Set(ctx, allProductsKey(), products); err != nil {
		c.log.Warnw("failed to cache product list", "error", err)
	}
	return products
}

func (c *CatalogCache) ListByCategory(ctx context.Context, category models.Category) []*models.Product {
	if c.cache == nil {
		return c.registry.ListByCategory(category)
	}

	var products []*models.Product
	if err := c.cache.Get(ctx, categoryKey(category), &products); err == nil {
		return products
	}

	products = c.registry.ListByCategory(category)
	if err := c.cache.Set(ctx, categoryKey(category), products); err != nil {
		c.log.Warnw("failed to cache category list", "category", category, "error", err)
	}
	return products
}

func (c *CatalogCache) Get(ctx context.Context, id string) *models.Product {
	if c.cache == nil {
		return c.registry.Get(id)
	}

	var product models.Product
	err := c.cache.Get(ctx, productKey(id), &product)
	if err == nil {
		return &product
	}
	if err != redis.Nil {
		c.log.Warnw("cache read failed", "product", id, "error", err)
	}

	p := c.registry.Get(id)
	if p == nil {
		return nil
	}
	if err := c.cache.Set(ctx, productKey(id), p); err != nil {
		c.log.Warnw("failed to cache product", "product", id, "error", err)
	}
	return p
}

// Invalidate drops the cached entries touched by a stock or catalog change.
func (c *CatalogCache) Invalidate(ctx context.Context, ids ...string) {
	if c.cache == nil {
		return
	}

	keys := []string{allProductsKey()}
	for _, id := range ids {
		keys = append(keys, productKey(id))
		if p := c.registry.Get(id); p != nil {
			keys = append(keys, categoryKey(p.Category))
		}
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.log.Warnw("cache invalidation failed", "error", err)
	}
}
