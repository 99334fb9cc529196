// Package cache stores upstream response bodies for a short time so that
// dashboard refreshes do not hit the Vercel API rate limit.
package cache

import (
	"context"
	"time"
)

// Cache is a byte cache keyed by opaque strings. Implementations fail open:
// a backend error is reported as a miss and a failed Set is dropped.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Noop) Set(context.Context, string, []byte, time.Duration) {}
