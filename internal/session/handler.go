package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"jobmate/session-service/internal/model"
	"jobmate/session-service/internal/resolver"
	"jobmate/session-service/internal/store"
)

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler exposes the session exchange over HTTP.
//
// Routes:
//
//	POST /api/jobs              → ingest a scrape run's batch
//	GET  /api/jobs?sessionId=…  → retrieve the batch for a session
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the session-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/jobs", h.handleJobs)
}

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.ingest(w, r)
	case http.MethodGet:
		h.retrieve(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ─── Individual handlers ──────────────────────────────────────────────────────

// ingestRequest keeps jobs raw so a non-array payload can be rejected before
// anything touches the store.
type ingestRequest struct {
	SessionID string          `json:"sessionId"`
	Jobs      json.RawMessage `json:"jobs"`
}

func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		jsonError(w, "missing sessionId", http.StatusBadRequest)
		return
	}
	if !isJSONArray(req.Jobs) {
		jsonError(w, "jobs must be an array", http.StatusBadRequest)
		return
	}

	var batch []model.Job
	if err := json.Unmarshal(req.Jobs, &batch); err != nil {
		jsonError(w, "jobs must be an array of job objects", http.StatusBadRequest)
		return
	}

	if err := h.svc.Ingest(r.Context(), req.SessionID, batch); err != nil {
		if errors.Is(err, store.ErrInvalidSession) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[session-service] Ingest failed for session %s: %v", req.SessionID, err)
		jsonError(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	log.Printf("[session-service] Stored %d job(s) for session %s", len(batch), req.SessionID)
	jsonOK(w, map[string]bool{"success": true})
}

func (h *Handler) retrieve(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		jsonError(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	batch, err := h.svc.Retrieve(r.Context(), sessionID)
	if err != nil {
		var ue *resolver.UpstreamError
		switch {
		case errors.Is(err, store.ErrInvalidSession):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &ue):
			jsonError(w, "results lookup failed", http.StatusInternalServerError)
		default:
			log.Printf("[session-service] Retrieve failed for session %s: %v", sessionID, err)
			jsonError(w, "store unavailable", http.StatusServiceUnavailable)
		}
		return
	}

	log.Printf("[session-service] Returning %d job(s) for session %s", len(batch), sessionID)
	jsonOK(w, batch)
}

// isJSONArray reports whether raw begins with '[' after whitespace.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
