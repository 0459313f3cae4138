// internal/wizard/poller.go
//
// Deployment status polling for the post-signup success page.
//
// The deploy workflow usually reports back within a minute, so the
// poller starts eager and backs off: 2s, 4s, 8s, ... capped at 30s.
// Polling stops on a terminal status (active or failed), on context
// cancellation, or when the overall deadline passes.
package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/wowsites/platform/internal/schema"
)

// ErrPollTimeout is returned when no terminal status arrives in time.
var ErrPollTimeout = errors.New("deployment status poll timed out")

// StatusFunc fetches the current deployment status of a client.
type StatusFunc func(ctx context.Context) (string, error)

// Poller waits for a deployment to settle.
type Poller struct {
	Base    time.Duration // first delay between polls
	Cap     time.Duration // delay ceiling
	Timeout time.Duration // overall budget, 0 = none
}

// DefaultPoller matches the success page's expectations.
var DefaultPoller = Poller{
	Base:    2 * time.Second,
	Cap:     30 * time.Second,
	Timeout: 10 * time.Minute,
}

// Wait polls fetch until it reports a terminal status.  Transient fetch
// errors are retried on the same schedule.
func (p Poller) Wait(ctx context.Context, fetch StatusFunc) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	delay := p.Base
	for {
		status, err := fetch(ctx)
		if err == nil && terminal(status) {
			return status, nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", ErrPollTimeout
			}
			return "", ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > p.Cap {
			delay = p.Cap
		}
	}
}

func terminal(status string) bool {
	return status == schema.StatusActive || status == schema.StatusFailed
}
