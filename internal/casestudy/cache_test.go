package casestudy

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"consultancy-workers/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCached_MissThenHit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := logger.NewTestLogger(t)

	loads := 0
	load := func(context.Context) (*Stats, error) {
		loads++
		return &Stats{TotalCaseStudies: 7, FeaturedCount: 2}, nil
	}

	stats, cached, err := Cached(context.Background(), rdb, log, CacheStats, StatsKey, time.Minute, load)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 7, stats.TotalCaseStudies)
	assert.True(t, mr.Exists(StatsKey))
	assert.Equal(t, time.Minute, mr.TTL(StatsKey))

	stats, cached, err = Cached(context.Background(), rdb, log, CacheStats, StatsKey, time.Minute, load)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 2, stats.FeaturedCount)
	assert.Equal(t, 1, loads)
}

func TestCached_RedisDownFallsBackToLoad(t *testing.T) {
	// no expectations: every command fails
	rdb, _ := redismock.NewClientMock()

	value, cached, err := Cached(context.Background(), rdb, logger.NewNoOpLogger(), CacheFeatured, FeaturedKey(6), time.Minute,
		func(context.Context) ([]Summary, error) { return []Summary{{Slug: "invoice-ai"}}, nil })
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "invoice-ai", value[0].Slug)
}

func TestCached_LoadErrorIsReturned(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	_, _, err := Cached(context.Background(), rdb, logger.NewNoOpLogger(), CacheStats, StatsKey, time.Minute,
		func(context.Context) (*Stats, error) { return nil, stderrors.New("db down") })
	require.Error(t, err)
	assert.False(t, mr.Exists(StatsKey))
}

func TestFeaturedKey(t *testing.T) {
	assert.Equal(t, "casestudy:featured:6", FeaturedKey(6))
}
