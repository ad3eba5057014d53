// jobmate-session-service
//
// Session-scoped exchange between the scraping pipeline and the job-list UI:
//   - POST /api/jobs              — a scrape run stores its batch under a session ID
//   - GET  /api/jobs?sessionId=…  — the UI reads the batch back
//
// Batches are held for JOBS_TTL_HOURS and then expire. On a local miss the
// service falls back to the durable results bucket (RESULTS_BASE_URL).
// With REDIS_URL set the cache is shared across replicas; with DATABASE_URL
// set each accepted batch is also mirrored into job_feed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobmate/session-service/internal/archive"
	"jobmate/session-service/internal/config"
	"jobmate/session-service/internal/db"
	"jobmate/session-service/internal/resolver"
	"jobmate/session-service/internal/session"
	"jobmate/session-service/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[session-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ttl := time.Duration(cfg.TTLHours) * time.Hour

	// ── Store backend ────────────────────────────────────────────────────────
	var st store.Store
	var sweeper *store.Sweeper

	if cfg.RedisURL != "" {
		log.Println("[session-service] Connecting to Redis…")
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[session-service] Redis: %v", err)
		}
		defer rdb.Close()
		log.Println("[session-service] Redis connected ✓")
		st = store.NewRedis(rdb, ttl)
	} else {
		mem := store.NewMemory(ttl)
		sweeper = store.NewSweeper(mem, cfg.SweepMinutes)
		if err := sweeper.Start(); err != nil {
			log.Fatalf("[session-service] Sweeper: %v", err)
		}
		defer sweeper.Stop()
		st = mem
		log.Printf("[session-service] In-memory store — TTL %dh, sweep every %dm", cfg.TTLHours, cfg.SweepMinutes)
	}

	// ── Optional job_feed archival ───────────────────────────────────────────
	var archiver session.Archiver
	if cfg.DatabaseURL != "" {
		log.Println("[session-service] Connecting to PostgreSQL…")
		pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[session-service] PostgreSQL: %v", err)
		}
		defer pool.Close()
		log.Println("[session-service] PostgreSQL connected ✓")
		archiver = archive.New(pool)
	} else {
		log.Println("[session-service] DATABASE_URL not set — job_feed archival disabled")
	}

	// ── Service wiring ───────────────────────────────────────────────────────
	res := resolver.New(cfg.ResultsBaseURL, time.Duration(cfg.FetchTimeoutSec)*time.Second)
	svc := session.NewService(st, res, archiver)

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := session.NewHandler(svc)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[session-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[session-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[session-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[session-service] Shutdown error: %v", err)
	}
	log.Println("[session-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "session-service",
		"version": version,
	})
}
