// Package resolver fetches a session's job batch from the durable results
// bucket when the local store no longer has it.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobmate/session-service/internal/model"
)

const maxDetailBytes = 512 // upstream error bodies are truncated before logging

// ErrNotFound means the bucket explicitly reported that no results object
// exists for the session. Callers treat this as "no jobs yet", not a failure.
var ErrNotFound = errors.New("no results object for session")

// UpstreamError covers everything else that can go wrong during a fallback
// fetch: transport failures, timeouts, non-2xx replies, and payloads that do
// not decode as a job array. Status is 0 when the request never got a reply.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("results fetch failed: %s", e.Detail)
	}
	return fmt.Sprintf("results bucket returned %d: %s", e.Status, e.Detail)
}

// Client reads per-session result objects over HTTP. Objects live at
// <baseURL>/jobs_<sessionId>.json, written there by the scraping pipeline.
type Client struct {
	baseURL string
	client  *http.Client
}

// New constructs a Client. The timeout bounds the whole fetch so one slow
// bucket read cannot stall a retrieve request.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch performs a single GET for the session's results object. No retries:
// a retrieve call makes exactly one fallback attempt.
func (c *Client) Fetch(ctx context.Context, sessionID string) ([]model.Job, error) {
	reqURL := fmt.Sprintf("%s/jobs_%s.json", c.baseURL, url.PathEscape(sessionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Detail: err.Error()}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &UpstreamError{Status: resp.StatusCode, Detail: truncate(body)}
	}

	var batch []model.Job
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Detail: fmt.Sprintf("malformed payload: %v", err)}
	}
	return batch, nil
}

func truncate(body []byte) string {
	if len(body) > maxDetailBytes {
		body = body[:maxDetailBytes]
	}
	return string(body)
}
