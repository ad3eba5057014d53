// Package session implements the session job exchange: a scrape run posts
// its batch under a session ID, the job-list UI reads it back.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobmate/session-service/internal/model"
	"jobmate/session-service/internal/resolver"
	"jobmate/session-service/internal/store"
)

// Resolver is the fallback lookup consulted on a local cache miss.
type Resolver interface {
	Fetch(ctx context.Context, sessionID string) ([]model.Job, error)
}

// Archiver receives every accepted batch for best-effort mirroring. It must
// not block: Ingest calls it on the request path.
type Archiver interface {
	Archive(sessionID string, batch []model.Job)
}

// Service is the façade over the store and the fallback resolver. It holds
// no state of its own — everything lives in the store.
type Service struct {
	store    store.Store
	resolver Resolver
	archiver Archiver // nil when archival is disabled
}

// NewService wires a Service. archiver may be nil.
func NewService(st store.Store, res Resolver, archiver Archiver) *Service {
	return &Service{store: st, resolver: res, archiver: archiver}
}

// Ingest stores the batch for sessionID, replacing whatever was there.
// Concurrent ingests for one session race and the last write wins; with one
// producer per session that is the intended behavior, not a hazard.
func (s *Service) Ingest(ctx context.Context, sessionID string, batch []model.Job) error {
	if sessionID == "" {
		return store.ErrInvalidSession
	}
	if err := s.store.Put(ctx, sessionID, batch); err != nil {
		return fmt.Errorf("store put: %w", err)
	}
	if s.archiver != nil {
		s.archiver.Archive(sessionID, batch)
	}
	return nil
}

// Retrieve returns the batch for sessionID with IDs assigned. On a local
// miss it makes one fallback fetch against the results bucket; a bucket
// not-found reads as an empty batch so the UI shows "no jobs yet" rather
// than an error. Upstream failures are the one case that surfaces as an
// error, since they are distinguishable from legitimate absence.
//
// Fallback results are not written back into the store: every miss
// re-fetches remotely.
func (s *Service) Retrieve(ctx context.Context, sessionID string) ([]model.Job, error) {
	if sessionID == "" {
		return nil, store.ErrInvalidSession
	}

	batch, ok, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("store get: %w", err)
	}
	if ok {
		return AssignIDs(sessionID, batch), nil
	}

	batch, err = s.resolver.Fetch(ctx, sessionID)
	if errors.Is(err, resolver.ErrNotFound) {
		return []model.Job{}, nil
	}
	if err != nil {
		log.Printf("[session-service] Fallback fetch failed for session %s: %v", sessionID, err)
		return nil, err
	}
	return AssignIDs(sessionID, batch), nil
}
