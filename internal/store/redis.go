package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobmate/session-service/internal/model"
)

// Redis is a Store backed by a shared Redis instance. Used when the service
// runs with more than one replica: any replica can serve a session written
// by another, and a batch survives a process restart within its TTL.
//
// Redis expires keys natively, so there is no sweep to run here.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis wraps an already-connected client.
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func redisKey(sessionID string) string {
	return "jobs:session:" + sessionID
}

// Put serializes the batch and stores it under the session key with the
// configured TTL. SET is a full replacement, matching memory-store semantics.
func (r *Redis) Put(ctx context.Context, sessionID string, batch []model.Job) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	if batch == nil {
		batch = []model.Job{}
	}

	raw, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	if err := r.rdb.Set(ctx, redisKey(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET: %w", err)
	}
	return nil
}

// Get returns the batch for sessionID. A missing or expired key reads as
// absent; any other Redis failure is a backend error.
func (r *Redis) Get(ctx context.Context, sessionID string) ([]model.Job, bool, error) {
	if sessionID == "" {
		return nil, false, ErrInvalidSession
	}

	raw, err := r.rdb.Get(ctx, redisKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis GET: %w", err)
	}

	var batch []model.Job
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, false, fmt.Errorf("unmarshal batch: %w", err)
	}
	return batch, true, nil
}
