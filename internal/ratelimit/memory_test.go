// internal/ratelimit/memory_test.go
//
// Run: go test ./internal/ratelimit -v

package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemory_EleventhCallDenied(t *testing.T) {
	lim := NewMemory(DefaultLimit, DefaultWindow)
	ctx := context.Background()

	for i := 0; i < DefaultLimit; i++ {
		if !lim.Allow(ctx, "203.0.113.7") {
			t.Fatalf("call %d denied, want allowed", i+1)
		}
	}
	if lim.Allow(ctx, "203.0.113.7") {
		t.Fatal("11th call within the window must be denied")
	}
	// A different caller identity is unaffected.
	if !lim.Allow(ctx, "198.51.100.2") {
		t.Fatal("other key must not share the bucket")
	}
}

func TestMemory_WindowResets(t *testing.T) {
	lim := NewMemory(2, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	lim.now = func() time.Time { return now }
	ctx := context.Background()

	lim.Allow(ctx, "k")
	lim.Allow(ctx, "k")
	if lim.Allow(ctx, "k") {
		t.Fatal("third call denied expected")
	}

	now = now.Add(61 * time.Second)
	if !lim.Allow(ctx, "k") {
		t.Fatal("call after window expiry must be allowed")
	}
}
