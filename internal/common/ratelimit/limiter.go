// Package ratelimit enforces per-key request budgets for the public-facing
// workers (contact submissions, case-study inquiries, quick ROI estimates).
//
// Counting happens in a redis fixed window shared by every worker replica.
// When redis is unreachable and the local fallback is enabled, each process
// falls back to its own token bucket for the same key.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"consultancy-workers/internal/common/config"
	"consultancy-workers/internal/common/metrics"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Scopes configured from config.RateLimitConfig.
const (
	ScopeContact = "contact"
	ScopeInquiry = "inquiry"
	ScopeROI     = "roi"
)

const (
	SourceRedis = "redis"
	SourceLocal = "local"
	SourceNone  = "none"
)

// Rule allows Limit requests per Window for one key.
type Rule struct {
	Limit  int
	Window time.Duration
}

type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	Source     string
}

// maxLocalKeys bounds the fallback buckets kept in memory.
const maxLocalKeys = 10000

type localBucket struct {
	lim      *rate.Limiter
	window   time.Duration
	lastSeen time.Time
}

type Limiter struct {
	rdb           redis.Cmdable
	rules         map[string]Rule
	localFallback bool
	now           func() time.Time

	mu       sync.Mutex
	local    map[string]*localBucket
	localCap int
}

func New(rdb redis.Cmdable, rules map[string]Rule, localFallback bool) *Limiter {
	return &Limiter{
		rdb:           rdb,
		rules:         rules,
		localFallback: localFallback,
		now:           time.Now,
		local:         make(map[string]*localBucket),
		localCap:      maxLocalKeys,
	}
}

// FromConfig returns nil when rate limiting is disabled; a nil Limiter
// allows everything.
func FromConfig(rdb redis.Cmdable, cfg config.RateLimitConfig) *Limiter {
	if !cfg.Enabled {
		return nil
	}
	return New(rdb, map[string]Rule{
		ScopeContact: {Limit: cfg.ContactPerMinute, Window: time.Minute},
		ScopeInquiry: {Limit: cfg.InquiryPerMinute, Window: time.Minute},
		ScopeROI:     {Limit: cfg.ROIPerMinute, Window: time.Minute},
	}, cfg.LocalFallback)
}

// Allow counts one request for key under scope. Scopes without a rule, and
// empty keys, are not limited.
func (l *Limiter) Allow(ctx context.Context, scope, key string) (Result, error) {
	if l == nil {
		return Result{Allowed: true, Source: SourceNone}, nil
	}
	rule, ok := l.rules[scope]
	if !ok || rule.Limit <= 0 || key == "" {
		return Result{Allowed: true, Source: SourceNone}, nil
	}

	res, err := l.allowRedis(ctx, scope, key, rule)
	if err != nil {
		if !l.localFallback {
			return Result{}, fmt.Errorf("rate limit %s: %w", scope, err)
		}
		res = l.allowLocal(scope, key, rule)
	}

	if !res.Allowed {
		metrics.RateLimitRejections.WithLabelValues(scope).Inc()
	}
	return res, nil
}

func (l *Limiter) allowRedis(ctx context.Context, scope, key string, rule Rule) (Result, error) {
	if l.rdb == nil {
		return Result{}, fmt.Errorf("no redis client")
	}

	now := l.now()
	window := now.Truncate(rule.Window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s:%d", scope, key, window.Unix())

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, redisKey, rule.Window).Err(); err != nil {
			return Result{}, err
		}
	}

	res := Result{
		Allowed:   count <= int64(rule.Limit),
		Remaining: max(rule.Limit-int(count), 0),
		Source:    SourceRedis,
	}
	if !res.Allowed {
		res.RetryAfter = window.Add(rule.Window).Sub(now)
	}
	return res, nil
}

func (l *Limiter) allowLocal(scope, key string, rule Rule) Result {
	now := l.now()

	l.mu.Lock()
	b, ok := l.local[scope+":"+key]
	if !ok {
		if len(l.local) >= l.localCap {
			l.evictLocked(now)
		}
		b = &localBucket{
			lim:    rate.NewLimiter(rate.Every(rule.Window/time.Duration(rule.Limit)), rule.Limit),
			window: rule.Window,
		}
		l.local[scope+":"+key] = b
	}
	b.lastSeen = now
	lim := b.lim
	l.mu.Unlock()

	res := Result{Source: SourceLocal}
	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		res.RetryAfter = delay
		return res
	}
	res.Allowed = true
	res.Remaining = int(lim.TokensAt(now))
	return res
}

// evictLocked drops buckets idle for a whole window, which have refilled and
// are no different from a new one. If every bucket is still active the least
// recently used one goes. l.mu must be held.
func (l *Limiter) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, b := range l.local {
		if now.Sub(b.lastSeen) >= b.window {
			delete(l.local, k)
			continue
		}
		if oldestKey == "" || b.lastSeen.Before(oldest) {
			oldestKey, oldest = k, b.lastSeen
		}
	}
	if len(l.local) >= l.localCap && oldestKey != "" {
		delete(l.local, oldestKey)
	}
}
