package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gracefm/db"
	"gracefm/logger"
)

// Redis-backed cache for normalized CMS listing pages. The upstream CMS is
// slow and rate-limited; listing pages change rarely, so short TTLs take the
// read load off it. All helpers tolerate a nil client: without redis every
// lookup is a miss and every store a no-op.

// SermonPageKey builds the cache key for one sermons listing page.
func SermonPageKey(page, perPage int, categoryID int64) string {
	return fmt.Sprintf("content:sermons:p%d:n%d:c%d", page, perPage, categoryID)
}

// PlaylistPageKey builds the cache key for one playlists listing page.
func PlaylistPageKey(page, perPage int) string {
	return fmt.Sprintf("content:playlists:p%d:n%d", page, perPage)
}

// QuotePageKey builds the cache key for one quotes listing page.
func QuotePageKey(page, perPage int) string {
	return fmt.Sprintf("content:quotes:p%d:n%d", page, perPage)
}

// GetJSON loads a cached value into v. False means miss (or no cache).
func GetJSON(ctx context.Context, key string, v interface{}) bool {
	if db.RedisClient == nil {
		return false
	}

	data, err := db.RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("corrupt cache entry dropped", logger.String("key", key), logger.ErrorField(err))
		db.RedisClient.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a value under key with the given TTL. Failures are logged
// and ignored; the cache is an optimization, never a dependency.
func SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if db.RedisClient == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("cache encode failed", logger.String("key", key), logger.ErrorField(err))
		return
	}
	if err := db.RedisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warn("cache store failed", logger.String("key", key), logger.ErrorField(err))
	}
}
