// Package archive mirrors ingested batches into the shared job_feed table so
// session results show up in the rest of the pipeline. Strictly best-effort:
// the cache is the source of truth for the session window, and an archive
// failure never fails or slows an ingest.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobmate/session-service/internal/model"
)

const writeTimeout = 10 * time.Second

// Archiver writes batches to PostgreSQL on a detached goroutine.
type Archiver struct {
	pool *pgxpool.Pool
}

// New constructs an Archiver over an already-connected pool.
func New(pool *pgxpool.Pool) *Archiver {
	return &Archiver{pool: pool}
}

// Archive hands the batch off and returns immediately.
func (a *Archiver) Archive(sessionID string, batch []model.Job) {
	go a.archive(sessionID, batch)
}

func (a *Archiver) archive(sessionID string, batch []model.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var inserted, dupes int
	for i, job := range batch {
		rawJSON, err := json.Marshal(job)
		if err != nil {
			log.Printf("[archive] json.Marshal error: %v", err)
			continue
		}

		// Jobs without a URL still need a stable dedup key.
		sourceURL := job.JobURL
		if sourceURL == "" {
			sourceURL = fmt.Sprintf("session:%s:%d", sessionID, i)
		}

		tag, err := a.pool.Exec(ctx,
			`INSERT INTO job_feed (session_id, raw_data, source_url, status)
			 SELECT $1, $2::jsonb, $3, 'PENDING'
			 WHERE NOT EXISTS (
			   SELECT 1 FROM job_feed WHERE source_url = $3
			 )`,
			sessionID, string(rawJSON), sourceURL,
		)
		if err != nil {
			log.Printf("[archive] DB insert error for session %s: %v", sessionID, err)
			return
		}

		if tag.RowsAffected() == 0 {
			dupes++
		} else {
			inserted++
		}
	}

	log.Printf("[archive] Session %s archived — inserted=%d duplicates=%d", sessionID, inserted, dupes)
}
