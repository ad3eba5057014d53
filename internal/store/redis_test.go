package store

import (
	"context"
	"os"
	"testing"
	"time"

	"jobmate/session-service/internal/db"
	"jobmate/session-service/internal/model"
)

func TestRedisKey(t *testing.T) {
	if got := redisKey("abc123"); got != "jobs:session:abc123" {
		t.Errorf("redisKey: got %q, want jobs:session:abc123", got)
	}
}

func TestRedis_EmptySessionID(t *testing.T) {
	r := NewRedis(nil, time.Hour)
	if err := r.Put(context.Background(), "", nil); err != ErrInvalidSession {
		t.Errorf("Put(\"\"): got %v, want ErrInvalidSession", err)
	}
	if _, _, err := r.Get(context.Background(), ""); err != ErrInvalidSession {
		t.Errorf("Get(\"\"): got %v, want ErrInvalidSession", err)
	}
}

// TestRedis_RoundTrip needs a live Redis; set TEST_REDIS_URL to run it.
func TestRedis_RoundTrip(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	rdb, err := db.NewRedisClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()

	st := NewRedis(rdb, time.Minute)
	sessionID := "test-roundtrip"
	defer rdb.Del(ctx, redisKey(sessionID))

	want := []model.Job{{Title: "Engineer", Company: "Acme", Location: "Remote", JobURL: "https://x/1"}}
	if err := st.Put(ctx, sessionID, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := st.Get(ctx, sessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: expected batch, got none")
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("Get: got %+v, want %+v", got, want)
	}

	if _, ok, _ := st.Get(ctx, "never-written"); ok {
		t.Error("Get on missing key: expected ok=false")
	}
}
