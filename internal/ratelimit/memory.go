// internal/ratelimit/memory.go
//
// Process-local fixed-window limiter.
//
// Suitable for single-instance deployments and tests.  Buckets live in
// a mutex-guarded map; expired buckets are reused in place, and the map
// is pruned opportunistically so idle keys do not accumulate forever.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// pruneThreshold caps how many buckets may sit in the map before an
// Allow call sweeps out the expired ones.
const pruneThreshold = 4096

type bucket struct {
	count   int
	resetAt time.Time
}

// Memory is a fixed-window in-process Limiter.
type Memory struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket

	// now is swappable for tests.
	now func() time.Time
}

// NewMemory returns a limiter permitting limit calls per window for
// each distinct key.
func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow implements Limiter.
func (m *Memory) Allow(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, ok := m.buckets[key]
	if !ok || now.After(b.resetAt) {
		if len(m.buckets) >= pruneThreshold {
			m.prune(now)
		}
		m.buckets[key] = &bucket{count: 1, resetAt: now.Add(m.window)}
		return true
	}
	if b.count >= m.limit {
		return false
	}
	b.count++
	return true
}

// prune removes expired buckets.  Caller holds the mutex.
func (m *Memory) prune(now time.Time) {
	for k, b := range m.buckets {
		if now.After(b.resetAt) {
			delete(m.buckets, k)
		}
	}
}
