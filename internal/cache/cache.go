// Package cache provides a small Redis-backed cache for related-entity
// lookups. Entries are bson-encoded documents with a short TTL; a nil
// LookupCache is a no-op so the cache can be disabled by configuration.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/config"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const defaultTTL = 30 * time.Second

type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLookupCache returns nil when REDIS_ADDR is not configured; callers treat
// a nil cache as a miss on every read.
func NewLookupCache(cfg *config.Config) *LookupCache {
	if cfg.RedisAddr == "" {
		return nil
	}
	return &LookupCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
		ttl:    defaultTTL,
	}
}

func (c *LookupCache) Get(ctx context.Context, collection string, id string) (bson.M, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(collection, id)).Bytes()
	if err != nil {
		return nil, false
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, false
	}
	return doc, true
}

func (c *LookupCache) Set(ctx context.Context, collection string, id string, doc bson.M) {
	if c == nil {
		return
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return
	}
	// Best effort: a failed write only costs a later cache miss.
	c.client.Set(ctx, key(collection, id), raw, c.ttl)
}

func key(collection, id string) string {
	return fmt.Sprintf("lookup:%s:%s", collection, id)
}
