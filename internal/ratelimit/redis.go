// internal/ratelimit/redis.go
//
// Shared-counter limiter backed by Redis.
//
// Context
// -------
// The in-process limiter is per-process, so behind a load balancer the
// effective limit multiplies by the instance count.  This backend keeps
// one INCR counter per key with the window TTL, making the limit global
// across instances.  Backend errors fail open: a Redis outage degrades
// to "no rate limiting", not to a dead availability endpoint.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "ratelimit:subdomain:"

// Redis is a fixed-window Limiter sharing its counters across
// instances.
type Redis struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	log    *zap.SugaredLogger
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client, limit int, window time.Duration, log *zap.SugaredLogger) *Redis {
	return &Redis{rdb: rdb, limit: limit, window: window, log: log}
}

// Allow implements Limiter.  The first hit on a key creates the counter
// and arms the window TTL atomically via a pipeline.
func (r *Redis) Allow(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	k := redisKeyPrefix + key
	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Warnw("rate limiter redis error, failing open", "key", key, "err", err)
		return true
	}
	return incr.Val() <= int64(r.limit)
}
