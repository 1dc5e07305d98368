package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
	"github.com/nutritrack/foodlog-api/internal/core/ports"
)

const catalogTTL = 10 * time.Minute

// CatalogCache is a read-through cache in front of the catalog store for
// name lookups, the hot path of the auto-log pipeline. Catalog items are
// immutable in scope, so staleness is bounded by the TTL alone. Cache
// failures are never fatal; lookups fall through to the store.
// Key format: catalog:name:<normalized_name>
type CatalogCache struct {
	client *redis.Client
	next   ports.CatalogRepository
	log    zerolog.Logger
}

func NewCatalogCache(client *redis.Client, next ports.CatalogRepository, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, next: next, log: log}
}

// FindByID goes straight to the store; manual logging hits the primary key.
func (c *CatalogCache) FindByID(ctx context.Context, id string) (*domain.FoodItem, error) {
	return c.next.FindByID(ctx, id)
}

// FindByName serves from Redis when possible, filling the cache on a miss.
func (c *CatalogCache) FindByName(ctx context.Context, name string) (*domain.FoodItem, error) {
	key := c.key(name)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var item domain.FoodItem
		if err := json.Unmarshal(raw, &item); err == nil {
			return &item, nil
		}
		c.log.Warn().Str("key", key).Msg("corrupt catalog cache entry, falling through")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
	}

	item, err := c.next.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(item); err == nil {
		if err := c.client.Set(ctx, key, raw, catalogTTL).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
		}
	}

	return item, nil
}

func (c *CatalogCache) key(name string) string {
	return fmt.Sprintf("catalog:name:%s", name)
}
