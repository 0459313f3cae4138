// internal/wizard/wizard.go
//
// The five-step signup state machine.
//
// Workflow
// --------
//   Start   → new draft on step 1.
//   Update  → replace the draft's form data; a subdomain edit bumps the
//             draft's check token and schedules a debounced
//             availability check.
//   Next    → validate the current step, advance on success.
//   Back    → previous step, never below 1.
//   Submit  → full-schema validation on the preview step; the caller
//             provisions the site and then discards the draft.
//
// Notes
// -----
//   • Availability checks fire 500ms after the last subdomain edit and
//     only for candidates of three or more characters, mirroring the
//     debounce the signup form applies client-side.  Results carrying a
//     stale token are dropped.
//   • A "taken" verdict is advisory here; the UNIQUE key on the client
//     table still decides the race at submit time.
package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wowsites/platform/internal/availability"
	"github.com/wowsites/platform/internal/schema"
)

const (
	debounceDelay = 500 * time.Millisecond
	minCheckLen   = 3
)

// Checker is the availability capability the wizard needs.
type Checker interface {
	Check(ctx context.Context, callerKey, subdomain string) (availability.Result, error)
}

// Wizard drives signup drafts.  Safe for concurrent use.
type Wizard struct {
	store   Store
	checker Checker

	mu     sync.Mutex
	timers map[string]*time.Timer

	delay time.Duration
	log   *zap.SugaredLogger
}

// New wires the machine.
func New(store Store, checker Checker) *Wizard {
	return &Wizard{
		store:   store,
		checker: checker,
		timers:  make(map[string]*time.Timer),
		delay:   debounceDelay,
		log:     zap.S().Named("wizard"),
	}
}

// Start opens a fresh draft.
func (w *Wizard) Start(ctx context.Context) (*Draft, error) {
	d := &Draft{
		ID:        uuid.NewString(),
		Step:      StepBusinessBasics,
		UpdatedAt: time.Now().UTC(),
	}
	if err := w.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get loads a draft.
func (w *Wizard) Get(ctx context.Context, draftID string) (*Draft, error) {
	return w.store.Get(ctx, draftID)
}

// Update replaces the draft's form data.  callerKey feeds the
// availability rate limiter when a check is scheduled.
func (w *Wizard) Update(ctx context.Context, draftID, callerKey string, data schema.ClientData) (*Draft, error) {
	d, err := w.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	subdomainChanged := data.Subdomain != d.Data.Subdomain
	d.Data = data
	d.UpdatedAt = time.Now().UTC()

	if subdomainChanged {
		d.CheckToken++
		d.SubdomainAvailable = nil
		d.SubdomainMessage = ""
		if len(data.Subdomain) >= minCheckLen {
			w.scheduleCheck(draftID, callerKey, data.Subdomain, d.CheckToken)
		} else {
			w.cancelCheck(draftID)
		}
	}

	if err := w.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Next validates the current step and advances.  Validation failures
// are returned alongside the unchanged draft so the form can highlight
// them.
func (w *Wizard) Next(ctx context.Context, draftID string) (*Draft, schema.FieldErrors, error) {
	d, err := w.store.Get(ctx, draftID)
	if err != nil {
		return nil, nil, err
	}

	if errs := validateStep(d.Step, d); len(errs) > 0 {
		return d, errs, nil
	}
	if d.Step < StepCount {
		d.Step++
		d.UpdatedAt = time.Now().UTC()
		if err := w.store.Save(ctx, d); err != nil {
			return nil, nil, err
		}
	}
	return d, nil, nil
}

// Back steps backwards without validating; partial input on the
// current step is kept.
func (w *Wizard) Back(ctx context.Context, draftID string) (*Draft, error) {
	d, err := w.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.Step > 1 {
		d.Step--
		d.UpdatedAt = time.Now().UTC()
		if err := w.store.Save(ctx, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Submit runs the full schema over the draft and returns the validated
// payload for provisioning.  The draft survives a failed submit.
func (w *Wizard) Submit(ctx context.Context, draftID string) (schema.ClientData, schema.FieldErrors, error) {
	d, err := w.store.Get(ctx, draftID)
	if err != nil {
		return schema.ClientData{}, nil, err
	}
	if errs := schema.ValidateClientData(d.Data); len(errs) > 0 {
		return schema.ClientData{}, errs, nil
	}
	return d.Data, nil, nil
}

// Finish discards a draft after a successful provision.
func (w *Wizard) Finish(ctx context.Context, draftID string) error {
	w.cancelCheck(draftID)
	return w.store.Delete(ctx, draftID)
}

/*──────────────────────────── debounced checks ─────────────────────────────*/

// scheduleCheck arms (or re-arms) the draft's debounce timer.
func (w *Wizard) scheduleCheck(draftID, callerKey, subdomain string, token uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[draftID]; ok {
		t.Stop()
	}
	w.timers[draftID] = time.AfterFunc(w.delay, func() {
		w.runCheck(draftID, callerKey, subdomain, token)
	})
}

func (w *Wizard) cancelCheck(draftID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[draftID]; ok {
		t.Stop()
		delete(w.timers, draftID)
	}
}

// runCheck performs the availability lookup and writes the verdict back
// onto the draft, unless the visitor has edited the subdomain again in
// the meantime.
func (w *Wizard) runCheck(draftID, callerKey, subdomain string, token uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := w.checker.Check(ctx, callerKey, subdomain)
	if err != nil {
		w.log.Warnw("availability check failed", "draft", draftID, "subdomain", subdomain, "err", err)
		return
	}
	if res.RateLimited {
		// Leave the verdict unknown; the next edit retries.
		return
	}

	d, err := w.store.Get(ctx, draftID)
	if err != nil {
		return
	}
	if d.CheckToken != token {
		return // stale: a newer edit owns the verdict
	}

	avail := res.Available
	d.SubdomainAvailable = &avail
	d.SubdomainMessage = res.Message
	if err := w.store.Save(ctx, d); err != nil {
		w.log.Warnw("saving availability verdict failed", "draft", draftID, "err", err)
	}
}
