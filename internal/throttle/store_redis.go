package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"civicdesk/pkg/requestcontext"
)

const keyPrefix = "throttle:submit:"

var redisCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "civicdesk_throttle_redis_check_duration_seconds",
	Help:    "Time spent counting a submission in Redis",
	Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
})

// RedisLimiter shares fixed-window counters between instances. The window
// starts on the first hit and expires with the key.
type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	start := time.Now()
	defer func() {
		redisCheckDuration.Observe(time.Since(start).Seconds())
	}()

	redisKey := keyPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("count submission: %w", err)
	}

	count := int(incr.Val())
	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = window
	}

	now := requestcontext.Now(ctx)
	resetAt := now.Add(remaining)

	if count > limit {
		return &Result{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfter(now, resetAt),
		}, nil
	}

	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count,
		ResetAt:   resetAt,
	}, nil
}

// Reset forgets the counter for key.
func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("reset throttle key: %w", err)
	}
	return nil
}
