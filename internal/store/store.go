// Package store holds a session's scraped job batch until it expires.
//
// Two implementations exist: an in-memory map with its own TTL bookkeeping
// (the default), and a Redis-backed store for multi-instance deployments
// where a session must survive a process restart within its TTL window.
package store

import (
	"context"
	"errors"

	"jobmate/session-service/internal/model"
)

// ErrInvalidSession is returned for an empty session ID. It is always a
// caller mistake, never retried.
var ErrInvalidSession = errors.New("session id must not be empty")

// Store maps a session ID to the job batch of one scrape run.
//
// Put replaces any previous batch for the session and restarts its TTL.
// Get reports ok=false for sessions that were never written or whose TTL
// has elapsed, whether or not the entry has been physically removed yet.
// A non-nil error means the backend itself failed, not that the session
// is absent.
type Store interface {
	Put(ctx context.Context, sessionID string, batch []model.Job) error
	Get(ctx context.Context, sessionID string) ([]model.Job, bool, error)
}
