// internal/outbox/worker.go
//
// Background drain of the outbox table.
//
// Workflow
// --------
// Every poll interval the worker claims a batch of due entries and
// posts each payload to the deploy-workflow webhook.  The shared secret
// is injected at send time so it never touches the database.  A failed
// delivery is rescheduled with exponential backoff, doubling from
// retryBase up to retryCap; entries are never dropped, since the deploy
// workflow is idempotent per client ID.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/wowsites/platform/internal/metrics"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultBatchSize    = 16

	retryBase = 10 * time.Second
	retryCap  = 15 * time.Minute
)

// queue is the slice of Store the worker needs; tests stub it.
type queue interface {
	Due(ctx context.Context, limit int) ([]Entry, error)
	MarkDelivered(ctx context.Context, id int64) error
	Reschedule(ctx context.Context, id int64, next time.Time, lastError string) error
}

// Worker delivers outbox entries to the deploy workflow.
type Worker struct {
	queue      queue
	client     *resty.Client
	webhookURL string
	secret     string

	pollInterval time.Duration
	batchSize    int
	now          func() time.Time
	log          *zap.SugaredLogger
}

// NewWorker builds a worker posting to webhookURL with the shared
// secret.  The HTTP timeout is short; slow endpoints are retried later
// rather than held open.
func NewWorker(store *Store, webhookURL, secret string) *Worker {
	return &Worker{
		queue:        store,
		client:       resty.New().SetTimeout(15 * time.Second),
		webhookURL:   webhookURL,
		secret:       secret,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
		now:          time.Now,
		log:          zap.S().Named("outbox"),
	}
}

// Run drains the outbox until ctx is cancelled.  Call in a goroutine.
func (w *Worker) Run(ctx context.Context) {
	w.log.Infow("outbox worker started", "interval", w.pollInterval, "webhook", w.webhookURL)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain processes one batch.  Errors are per-entry; a broken entry
// never blocks the rest of the batch.
func (w *Worker) drain(ctx context.Context) {
	entries, err := w.queue.Due(ctx, w.batchSize)
	if err != nil {
		w.log.Errorw("outbox poll failed", "err", err)
		return
	}

	for _, e := range entries {
		if err := w.deliver(ctx, e); err != nil {
			metrics.OutboxDeliveryErrorsTotal.Inc()
			next := w.now().Add(backoff(e.Attempts))
			w.log.Warnw("outbox delivery failed",
				"id", e.ID, "client_id", e.ClientID, "attempts", e.Attempts+1, "next", next, "err", err)
			if rerr := w.queue.Reschedule(ctx, e.ID, next, err.Error()); rerr != nil {
				w.log.Errorw("outbox reschedule failed", "id", e.ID, "err", rerr)
			}
			continue
		}

		metrics.OutboxDeliveriesTotal.Inc()
		w.log.Infow("outbox entry delivered", "id", e.ID, "client_id", e.ClientID)
		if err := w.queue.MarkDelivered(ctx, e.ID); err != nil {
			// The deploy workflow dedupes on client ID, so a redelivery
			// after this failure is harmless.
			w.log.Errorw("outbox mark delivered failed", "id", e.ID, "err", err)
		}
	}
}

// deliver posts one payload with the secret injected.
func (w *Worker) deliver(ctx context.Context, e Entry) error {
	var body map[string]any
	if err := json.Unmarshal(e.Payload, &body); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	body["secret"] = w.secret

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(w.webhookURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned %s", resp.Status())
	}
	return nil
}

// backoff returns the delay before attempt n+1: retryBase doubled per
// prior attempt, capped at retryCap.
func backoff(attempts int) time.Duration {
	d := retryBase
	for i := 0; i < attempts; i++ {
		d *= 2
		if d >= retryCap {
			return retryCap
		}
	}
	return d
}
