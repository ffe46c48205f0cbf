// Package cache holds the short-lived Redis cache in front of the
// public catalog query. A nil *CatalogCache is valid and disables
// caching, so callers never branch on configuration.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "catalog:"

// DefaultTTL is the revalidation window for cached catalog pages.
const DefaultTTL = 60 * time.Second

type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache connects to Redis at address. An empty address
// returns nil: caching disabled.
func NewCatalogCache(address, password string, ttl time.Duration) (*CatalogCache, error) {
	if address == "" {
		return nil, nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &CatalogCache{client: client, ttl: ttl}, nil
}

// Key normalizes catalog query parameters into one cache key.
func Key(page, limit int, search, category, tech, sort string, includeDrafts bool) string {
	return fmt.Sprintf("%sp=%d&l=%d&q=%s&c=%s&t=%s&s=%s&a=%t",
		keyPrefix, page, limit, search, category, tech, sort, includeDrafts)
}

// Get returns the cached response body for key, if present.
func (c *CatalogCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}
	return payload, true
}

// Set stores a response body under key for the cache TTL. Failures are
// logged and swallowed; the cache is best effort.
func (c *CatalogCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

// Invalidate drops every cached catalog page. Called after any project
// write.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	pattern := keyPrefix + "*"
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			log.Warn().Err(err).Msg("catalog cache invalidation scan failed")
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				log.Warn().Err(err).Msg("catalog cache invalidation delete failed")
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return
		}
	}
}
