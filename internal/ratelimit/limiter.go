// internal/ratelimit/limiter.go
//
// Injectable rate-limit capability.
//
// Context
// -------
// The availability endpoint allows each caller identity at most N
// checks per rolling window.  Handlers receive the limiter as a
// dependency instead of reaching for package state, so a single-
// instance deployment can run the in-process map while multi-instance
// deployments share a Redis counter (see memory.go and redis.go).
package ratelimit

import (
	"context"
	"time"
)

// Default policy for subdomain availability checks: 10 per minute.
const (
	DefaultLimit  = 10
	DefaultWindow = time.Minute
)

// Limiter answers whether a caller identified by key may proceed.
// Implementations fail open on backend errors; losing a rate-limit
// bucket must never take the availability endpoint down with it.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}
