// internal/outbox/outbox.go
//
// Durable outbox for deploy-workflow notifications.
//
// Context
// -------
// Provisioning must tell the external deploy workflow about every new
// site.  Doing that inline with the signup request loses notifications
// whenever the workflow endpoint blips, and the client row would then
// sit in "pending" forever.  Instead the signup transaction enqueues a
// row here and returns; a background worker (worker.go) drains the
// table and retries failures with capped exponential backoff.
//
// Schema
// ------
//   CREATE TABLE outbox (
//     id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
//     client_id       CHAR(36)        NOT NULL,
//     payload         JSON            NOT NULL,
//     attempts        INT             NOT NULL DEFAULT 0,
//     next_attempt_at DATETIME        NOT NULL,
//     delivered_at    DATETIME        NULL,
//     last_error      VARCHAR(512)    NULL,
//     created_at      DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
//     PRIMARY KEY (id),
//     KEY idx_outbox_due (delivered_at, next_attempt_at)
//   ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Entry is one pending notification.
type Entry struct {
	ID            int64           `db:"id"`
	ClientID      string          `db:"client_id"`
	Payload       json.RawMessage `db:"payload"`
	Attempts      int             `db:"attempts"`
	NextAttemptAt time.Time       `db:"next_attempt_at"`
	DeliveredAt   sql.NullTime    `db:"delivered_at"`
	LastError     sql.NullString  `db:"last_error"`
}

// Store persists and claims outbox entries.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Enqueue records a notification for delivery.  Called in the same
// request that inserts the client row; the worker picks it up on its
// next tick.
func (s *Store) Enqueue(ctx context.Context, clientID string, payload json.RawMessage) error {
	const q = `
		INSERT INTO outbox (client_id, payload, next_attempt_at)
		VALUES (?, ?, UTC_TIMESTAMP())`
	if _, err := s.db.ExecContext(ctx, q, clientID, payload); err != nil {
		return fmt.Errorf("enqueue outbox entry: %w", err)
	}
	return nil
}

// Due returns up to limit undelivered entries whose retry time has
// passed, oldest first.
func (s *Store) Due(ctx context.Context, limit int) ([]Entry, error) {
	const q = `
		SELECT id, client_id, payload, attempts, next_attempt_at, delivered_at, last_error
		  FROM outbox
		 WHERE delivered_at IS NULL
		   AND next_attempt_at <= UTC_TIMESTAMP()
		 ORDER BY id
		 LIMIT ?`
	var entries []Entry
	if err := s.db.SelectContext(ctx, &entries, q, limit); err != nil {
		return nil, fmt.Errorf("select due outbox entries: %w", err)
	}
	return entries, nil
}

// MarkDelivered stamps an entry as done.
func (s *Store) MarkDelivered(ctx context.Context, id int64) error {
	const q = `UPDATE outbox SET delivered_at = UTC_TIMESTAMP() WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("mark outbox entry delivered: %w", err)
	}
	return nil
}

// Reschedule bumps the attempt counter and sets the next retry time.
func (s *Store) Reschedule(ctx context.Context, id int64, next time.Time, lastError string) error {
	if len(lastError) > 512 {
		lastError = lastError[:512]
	}
	const q = `
		UPDATE outbox
		   SET attempts = attempts + 1, next_attempt_at = ?, last_error = ?
		 WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, q, next.UTC(), lastError, id); err != nil {
		return fmt.Errorf("reschedule outbox entry: %w", err)
	}
	return nil
}
