// Package model defines shared data structures for the session service.
package model

// Job is one listing as produced by a scrape run and served back to the
// job-list UI. Content is never validated — the service only cares about
// collection shape, not field values.
//
// ID is derived, not scraped: listings arriving without one are assigned
// "<sessionId>-<index>" at retrieval time. Link is a legacy field some
// scrapers emit instead of job_url; it is folded into JobURL on the way out.
type Job struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary,omitempty"`
	JobURL   string `json:"job_url"`
	Link     string `json:"link,omitempty"`
}
