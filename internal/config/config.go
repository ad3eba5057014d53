// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing or malformed, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the session service.
type Config struct {
	Port            string
	ResultsBaseURL  string // durable results bucket consulted on cache miss
	RedisURL        string // optional — enables the Redis-backed store
	DatabaseURL     string // optional — enables job_feed archival
	TTLHours        int    // how long a session's batch stays cached
	SweepMinutes    int    // eviction cadence for the in-memory store
	FetchTimeoutSec int    // bound on one fallback fetch
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	baseURL := os.Getenv("RESULTS_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("RESULTS_BASE_URL is required")
	}

	ttl, err := positiveInt("JOBS_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}

	sweep, err := positiveInt("SWEEP_INTERVAL_MINUTES", 60)
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := positiveInt("FETCH_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}

	port := os.Getenv("SESSION_PORT")
	if port == "" {
		port = "8083"
	}

	return &Config{
		Port:            port,
		ResultsBaseURL:  baseURL,
		RedisURL:        os.Getenv("REDIS_URL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		TTLHours:        ttl,
		SweepMinutes:    sweep,
		FetchTimeoutSec: fetchTimeout,
	}, nil
}

func positiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}
