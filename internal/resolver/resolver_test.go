package resolver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobmate/session-service/internal/resolver"
)

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs_abc123.json" {
			t.Errorf("path: got %q, want /jobs_abc123.json", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"title":"Engineer","company":"Acme","location":"Remote","job_url":"https://x/1"}]`))
	}))
	defer srv.Close()

	c := resolver.New(srv.URL, 5*time.Second)
	batch, err := c.Fetch(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if len(batch) != 1 || batch[0].Title != "Engineer" {
		t.Errorf("Fetch: got %+v, want one Engineer job", batch)
	}
}

func TestFetch_SessionIDIsPathEscaped(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := resolver.New(srv.URL, 5*time.Second)
	if _, err := c.Fetch(context.Background(), "a/b"); err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if !strings.Contains(gotPath, "a%2Fb") {
		t.Errorf("path: got %q, session id should be escaped", gotPath)
	}
}

func TestFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such object", http.StatusNotFound)
	}))
	defer srv.Close()

	c := resolver.New(srv.URL, 5*time.Second)
	_, err := c.Fetch(context.Background(), "missing")
	if !errors.Is(err, resolver.ErrNotFound) {
		t.Errorf("Fetch: got %v, want ErrNotFound", err)
	}
}

func TestFetch_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := resolver.New(srv.URL, 5*time.Second)
	_, err := c.Fetch(context.Background(), "sess")

	var ue *resolver.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Fetch: got %v, want UpstreamError", err)
	}
	if ue.Status != http.StatusInternalServerError {
		t.Errorf("Status: got %d, want 500", ue.Status)
	}
}

func TestFetch_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	c := resolver.New(srv.URL, 5*time.Second)
	_, err := c.Fetch(context.Background(), "sess")

	var ue *resolver.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Fetch: got %v, want UpstreamError for non-array payload", err)
	}
	if errors.Is(err, resolver.ErrNotFound) {
		t.Error("malformed payload must not read as ErrNotFound")
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := resolver.New(srv.URL, 20*time.Millisecond)
	_, err := c.Fetch(context.Background(), "sess")

	var ue *resolver.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Fetch: got %v, want UpstreamError on timeout", err)
	}
	if ue.Status != 0 {
		t.Errorf("Status: got %d, want 0 (no reply)", ue.Status)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	// Grab a port that nothing is listening on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := resolver.New(url, time.Second)
	_, err := c.Fetch(context.Background(), "sess")

	var ue *resolver.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Fetch: got %v, want UpstreamError on refused connection", err)
	}
}
