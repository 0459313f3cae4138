// internal/wizard/draft.go
//
// Draft persistence for in-progress signups.
//
// Context
// -------
// A signup survives page reloads: every edit is saved server-side under
// a draft ID the browser keeps, and reopening the wizard restores the
// form exactly where the visitor left it.  Drafts are throwaway state,
// so the store is a small interface with two backends: in-process for
// single-node and dev setups, Redis when the platform runs more than
// one web node behind a balancer.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wowsites/platform/internal/schema"
)

// ErrDraftNotFound is returned for unknown or expired draft IDs.
var ErrDraftNotFound = errors.New("draft not found")

// draftTTL bounds how long an abandoned signup lingers.
const draftTTL = 24 * time.Hour

// Draft is one in-progress signup.
type Draft struct {
	ID   string            `json:"id"`
	Step int               `json:"step"`
	Data schema.ClientData `json:"data"`

	// CheckToken orders availability checks for this draft.  Every
	// subdomain edit bumps it; a check result carrying a stale token is
	// discarded, so a slow response for "joes" can never overwrite the
	// verdict for "joes-pizza".
	CheckToken uint64 `json:"checkToken"`

	// SubdomainAvailable is nil until a check for the current subdomain
	// completes.
	SubdomainAvailable *bool  `json:"subdomainAvailable,omitempty"`
	SubdomainMessage   string `json:"subdomainMessage,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists drafts.
type Store interface {
	Get(ctx context.Context, id string) (*Draft, error)
	Save(ctx context.Context, d *Draft) error
	Delete(ctx context.Context, id string) error
}

/*──────────────────────────── memory store ─────────────────────────────────*/

// MemoryStore keeps drafts in-process.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]Draft
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]Draft)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok || time.Since(d.UpdatedAt) > draftTTL {
		delete(s.drafts, id)
		return nil, ErrDraftNotFound
	}
	cp := d
	return &cp, nil
}

func (s *MemoryStore) Save(_ context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = *d
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

/*──────────────────────────── redis store ──────────────────────────────────*/

const draftKeyPrefix = "wizard:draft:"

// RedisStore shares drafts across web nodes.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Draft, error) {
	raw, err := s.rdb.Get(ctx, draftKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

func (s *RedisStore) Save(ctx context.Context, d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.rdb.Set(ctx, draftKeyPrefix+d.ID, raw, draftTTL).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, draftKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
