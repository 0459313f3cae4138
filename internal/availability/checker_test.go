// internal/availability/checker_test.go
//
// Run: go test ./internal/availability -v

package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowsites/platform/internal/ratelimit"
	"github.com/wowsites/platform/internal/schema"
)

// fakeIndex answers SubdomainExists from a fixed set and counts calls.
type fakeIndex struct {
	taken map[string]bool
	calls int
}

func (f *fakeIndex) SubdomainExists(_ context.Context, sub string) (bool, error) {
	f.calls++
	return f.taken[sub], nil
}

func newChecker(taken ...string) (*Checker, *fakeIndex) {
	idx := &fakeIndex{taken: map[string]bool{}}
	for _, s := range taken {
		idx.taken[s] = true
	}
	return New(ratelimit.NewMemory(ratelimit.DefaultLimit, ratelimit.DefaultWindow), idx), idx
}

func TestCheck_Available(t *testing.T) {
	c, _ := newChecker()
	res, err := c.Check(context.Background(), "1.2.3.4", "joes-pizza")
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, MsgAvailable, res.Message)
}

func TestCheck_TakenIsCaseInsensitive(t *testing.T) {
	c, _ := newChecker("joes-pizza")
	res, err := c.Check(context.Background(), "1.2.3.4", "JOES-PIZZA")
	require.NoError(t, err)

	// "JOES-PIZZA" fails shape validation (uppercase), so the verdict
	// comes from the schema, not the lookup.
	assert.False(t, res.Available)
	assert.True(t, res.Invalid)

	// A lowercase case-variant resolves against the same record.
	res, err = c.Check(context.Background(), "1.2.3.4", "joes-pizza")
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, MsgTaken, res.Message)
}

func TestCheck_MalformedShortCircuitsLookup(t *testing.T) {
	c, idx := newChecker()
	res, err := c.Check(context.Background(), "1.2.3.4", "-bad-")
	require.NoError(t, err)
	assert.True(t, res.Invalid)
	assert.Equal(t, schema.MsgSubdomainHyphenEdge, res.Message)
	assert.Zero(t, idx.calls, "malformed input must not hit the index")
}

func TestCheck_RateLimitedAfterTen(t *testing.T) {
	c, _ := newChecker()
	ctx := context.Background()

	for i := 0; i < ratelimit.DefaultLimit; i++ {
		res, err := c.Check(ctx, "9.9.9.9", "fresh-cuts")
		require.NoError(t, err)
		assert.False(t, res.RateLimited, "check %d", i+1)
	}

	res, err := c.Check(ctx, "9.9.9.9", "fresh-cuts")
	require.NoError(t, err)
	assert.True(t, res.RateLimited, "11th check must be rate limited")
	assert.Equal(t, MsgRateLimited, res.Message)

	// A different caller is unaffected.
	res, err = c.Check(ctx, "8.8.8.8", "fresh-cuts")
	require.NoError(t, err)
	assert.False(t, res.RateLimited)
}
