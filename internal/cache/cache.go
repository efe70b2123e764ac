// Package cache provides the key-value cache used to skip redundant reads before the locked decision.
package cache

import (
	"context"
	"time"
)

// Cache never surfaces an error: every failure degrades to a miss or a dropped write.
type Cache interface {
	// Get decodes the cached JSON value into dest and reports whether it was a hit.
	Get(ctx context.Context, key string, dest any) bool
	// Set stores value as JSON. A ttl of zero keeps the entry until it is overwritten or deleted.
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Del(ctx context.Context, key string)
}
