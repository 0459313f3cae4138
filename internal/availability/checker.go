// internal/availability/checker.go
//
// Subdomain availability checks.
//
// Context
// -------
// The wizard fires a check after every (debounced) edit of the
// subdomain field, so this path is the hottest read in the system.
// Checks run in three stages:
//
//   (a) per-caller rate limit — exceeding it yields a distinguishable
//       rate-limited result, not an availability verdict;
//   (b) schema validation of the candidate's shape;
//   (c) case-insensitive existence lookup against persisted records.
//
// Concurrent lookups for the same subdomain are collapsed through
// singleflight: ten users probing "joes-pizza" at once cost one query.
//
// The verdict is inherently racy against concurrent creation; the
// UNIQUE key on the client table is the source of truth, and this check
// is advisory.
package availability

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/wowsites/platform/internal/metrics"
	"github.com/wowsites/platform/internal/ratelimit"
	"github.com/wowsites/platform/internal/schema"
)

// Verdict messages.  Stable strings; the wizard and tests rely on them.
const (
	MsgRateLimited = "Rate limit exceeded. Please try again later."
	MsgTaken       = "This subdomain is already taken"
	MsgAvailable   = "Subdomain is available"
)

// Result is the outcome of one availability check.
type Result struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`

	// RateLimited and Invalid let the HTTP layer pick 429/400 without
	// string matching.  Not serialized.
	RateLimited bool `json:"-"`
	Invalid     bool `json:"-"`
}

// Index is the persistence capability the checker needs.
type Index interface {
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
}

// Checker performs rate-limited availability checks.
type Checker struct {
	limiter ratelimit.Limiter
	index   Index
	group   singleflight.Group
}

// New wires a checker from its two capabilities.
func New(limiter ratelimit.Limiter, index Index) *Checker {
	return &Checker{limiter: limiter, index: index}
}

// Check validates and looks up a candidate subdomain on behalf of the
// caller identified by callerKey.  Available is true only when the
// lookup finds nothing.
func (c *Checker) Check(ctx context.Context, callerKey, subdomain string) (Result, error) {
	metrics.SubdomainChecksTotal.Inc()

	if !c.limiter.Allow(ctx, callerKey) {
		metrics.RateLimitedTotal.Inc()
		return Result{Message: MsgRateLimited, RateLimited: true}, nil
	}

	if errs := schema.ValidateSubdomain(subdomain); len(errs) > 0 {
		return Result{Message: errs[0].Message, Invalid: true}, nil
	}

	folded := strings.ToLower(subdomain)
	v, err, _ := c.group.Do(folded, func() (any, error) {
		taken, err := c.index.SubdomainExists(ctx, folded)
		return taken, err
	})
	if err != nil {
		return Result{}, err
	}

	if v.(bool) {
		return Result{Message: MsgTaken}, nil
	}
	return Result{Available: true, Message: MsgAvailable}, nil
}
