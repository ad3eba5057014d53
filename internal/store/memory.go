package store

import (
	"context"
	"sync"
	"time"

	"jobmate/session-service/internal/model"
)

type entry struct {
	batch     []model.Job
	storedAt  time.Time
	expiresAt time.Time
}

// Memory is the in-memory Store. All state lives in a single map guarded by
// one mutex; operations on the same key are linearizable and the critical
// sections do no I/O.
//
// Expiry is enforced lazily on Get, so the background sweep (see Sweeper) is
// purely a memory-bound optimization, never a correctness requirement.
type Memory struct {
	mu   sync.Mutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time // injectable for deterministic tests
}

// NewMemory creates an empty Memory store whose entries live for ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Put replaces the batch for sessionID and restarts its TTL clock. A nil
// batch is stored as an empty one.
func (m *Memory) Put(ctx context.Context, sessionID string, batch []model.Job) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	if batch == nil {
		batch = []model.Job{}
	}

	now := m.now()
	m.mu.Lock()
	m.data[sessionID] = entry{
		batch:     batch,
		storedAt:  now,
		expiresAt: now.Add(m.ttl),
	}
	m.mu.Unlock()
	return nil
}

// Get returns the batch for sessionID if it is present and not yet expired.
// An entry whose expiry instant has been reached is treated as absent and
// deleted on the spot.
func (m *Memory) Get(ctx context.Context, sessionID string) ([]model.Job, bool, error) {
	if sessionID == "" {
		return nil, false, ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[sessionID]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.data, sessionID)
		return nil, false, nil
	}
	return e.batch, true, nil
}

// Count returns the number of entries currently held, including expired ones
// the sweep has not reached yet.
func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// Evict removes every entry whose expiry instant is at or before now and
// returns how many were removed.
func (m *Memory) Evict(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.data {
		if !now.Before(e.expiresAt) {
			delete(m.data, id)
			removed++
		}
	}
	return removed
}
