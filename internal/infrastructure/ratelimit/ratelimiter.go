// Package ratelimit limits request rates per client key.
package ratelimit

import (
	"context"
	"time"
)

// RateLimiter decides whether one more request for key fits the budget.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// Config is a per-minute budget. Burst bounds the number of requests the
// in-memory limiter lets through at once.
type Config struct {
	RequestsPerMinute int
	Burst             int
}

const window = time.Minute
