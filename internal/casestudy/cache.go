package casestudy

import (
	"context"
	"fmt"
	"time"

	"consultancy-workers/internal/common/database"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	CacheFeatured = "featured"
	CacheStats    = "stats"
)

// FeaturedKey is the cache key of the featured listing of size limit.
func FeaturedKey(limit int) string {
	return fmt.Sprintf("casestudy:featured:%d", limit)
}

const StatsKey = "casestudy:stats"

// Cached reads key from redis, falling back to load on a miss and storing
// its result for ttl. Redis failures degrade to load; they are logged and
// never returned. A nil rdb disables caching.
func Cached[T any](ctx context.Context, rdb redis.Cmdable, log logger.Logger, cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, bool, error) {
	var value T
	if rdb != nil {
		hit, err := database.GetJSON(ctx, rdb, key, &value)
		switch {
		case err != nil:
			metrics.CacheRequests.WithLabelValues(cache, "error").Inc()
			log.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		case hit:
			metrics.CacheRequests.WithLabelValues(cache, "hit").Inc()
			return value, true, nil
		default:
			metrics.CacheRequests.WithLabelValues(cache, "miss").Inc()
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, false, err
	}

	if rdb != nil && ttl > 0 {
		if err := database.SetJSON(ctx, rdb, key, value, ttl); err != nil {
			log.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return value, false, nil
}
