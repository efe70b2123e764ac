package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const DefaultKeyPrefix = "myfuel:cache:"

type localEntry struct {
	value     []byte
	expiresAt time.Time
}

// RedisCache stores values in Redis. The process-local map only holds values whose Redis write
// failed or that were written without a client; reads fall back to it on a Redis miss or error.
type RedisCache struct {
	client *redis.Client
	prefix string

	mu    sync.Mutex
	local map[string]localEntry
	now   func() time.Time
}

// NewRedisCache creates the cache. A nil client runs on the in-memory map only.
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: normalizePrefix(prefix),
		local:  make(map[string]localEntry),
		now:    time.Now,
	}
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return DefaultKeyPrefix
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return prefix
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) bool {
	k := c.key(key)

	if c.client != nil {
		val, err := c.client.Get(ctx, k).Bytes()
		switch {
		case err == nil:
			return decode(k, val, dest)
		case !errors.Is(err, redis.Nil):
			log.Printf("[CACHE] Redis get %s failed, using local copy: %v", k, err)
		}
	}

	c.mu.Lock()
	entry, ok := c.local[k]
	if ok && !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.local, k)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	return decode(k, entry.value, dest)
}

func decode(key string, data []byte, dest any) bool {
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("[CACHE] Discarding undecodable value for %s: %v", key, err)
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	k := c.key(key)

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[CACHE] Failed to encode value for %s: %v", k, err)
		return
	}

	if ttl < 0 {
		ttl = 0
	}

	if c.client != nil {
		err := c.client.Set(ctx, k, string(data), ttl).Err()
		if err == nil {
			c.mu.Lock()
			delete(c.local, k)
			c.mu.Unlock()
			return
		}
		log.Printf("[CACHE] Redis set %s failed, keeping local copy: %v", k, err)
	}

	now := c.now()
	entry := localEntry{value: data}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	c.mu.Lock()
	c.sweepLocked(now)
	c.local[k] = entry
	c.mu.Unlock()
}

// sweepLocked drops expired local entries. Callers hold c.mu.
func (c *RedisCache) sweepLocked(now time.Time) {
	for k, e := range c.local {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(c.local, k)
		}
	}
}

func (c *RedisCache) Del(ctx context.Context, key string) {
	k := c.key(key)

	c.mu.Lock()
	delete(c.local, k)
	c.mu.Unlock()

	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, k).Err(); err != nil {
		log.Printf("[CACHE] Redis del %s failed: %v", k, err)
	}
}
