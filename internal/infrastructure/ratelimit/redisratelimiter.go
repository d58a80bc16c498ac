package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter keeps a sliding one-minute window per key in a sorted
// set, so every instance sharing the Redis sees the same counts.
type RedisRateLimiter struct {
	client *redis.Client
	config Config
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, config Config) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, config: config, now: time.Now}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.config.RequestsPerMinute <= 0 {
		return true, nil
	}

	now := l.now()
	redisKey := l.getKey(key)
	windowStart := now.Add(-window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(nowNano),
		Member: fmt.Sprintf("%d", nowNano),
	})
	pipe.Expire(ctx, redisKey, window+time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	return countCmd.Val() < int64(l.config.RequestsPerMinute), nil
}

// Remaining reports how many requests key may still make in the current
// window.
func (l *RedisRateLimiter) Remaining(ctx context.Context, key string) (int, error) {
	redisKey := l.getKey(key)
	windowStart := l.now().Add(-window).UnixNano()

	count, err := l.client.ZCount(ctx, redisKey, strconv.FormatInt(windowStart, 10), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count rate limit window: %w", err)
	}
	if remaining := l.config.RequestsPerMinute - int(count); remaining > 0 {
		return remaining, nil
	}
	return 0, nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.getKey(key)).Err()
}

func (l *RedisRateLimiter) getKey(key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", key, window)
}
