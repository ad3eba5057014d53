package session

import (
	"fmt"

	"jobmate/session-service/internal/model"
)

// AssignIDs returns a copy of batch in which every job has a non-empty ID and
// a usable job_url. Scraper-provided IDs are kept verbatim; missing ones
// become "<sessionID>-<index>", which is unique within the batch because the
// index is. A job_url is taken from the legacy link field when absent, and
// falls back to "#" so the UI always has something to render.
//
// Pure function: the input slice is never mutated.
func AssignIDs(sessionID string, batch []model.Job) []model.Job {
	out := make([]model.Job, len(batch))
	for i, job := range batch {
		if job.ID == "" {
			job.ID = fmt.Sprintf("%s-%d", sessionID, i)
		}
		if job.JobURL == "" {
			if job.Link != "" {
				job.JobURL = job.Link
			} else {
				job.JobURL = "#"
			}
		}
		job.Link = "" // folded into JobURL — responses carry one URL field
		out[i] = job
	}
	return out
}
