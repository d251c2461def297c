package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gitinsight/internal/snapshot"
)

// analyzeTimeout bounds one full analysis, walk and narrative included.
const analyzeTimeout = 5 * time.Minute

// BuildMux registers all HTTP handlers on a new ServeMux.
func BuildMux(s *Service) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/runs", s.handleStartRun)
	mux.HandleFunc("/api/watch/", s.handleWatchSSE)
	mux.HandleFunc("/api/ws/analyze", s.handleAnalyzeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"ok":true}`)
	})
	return mux
}

// analyzeRequest is the conceptual user input: a repository URL plus the
// caller's generative-service credential.
type analyzeRequest struct {
	RepoURL string `json:"repo_url"`
	APIKey  string `json:"api_key"`
}

func decodeAnalyzeRequest(r *http.Request) (analyzeRequest, error) {
	var in analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, fmt.Errorf("invalid json body")
	}
	in.RepoURL = strings.TrimSpace(in.RepoURL)
	in.APIKey = strings.TrimSpace(in.APIKey)
	if in.RepoURL == "" || in.APIKey == "" {
		return in, fmt.Errorf("repo_url and api_key are required")
	}
	return in, nil
}

// handleAnalyze runs the whole flow synchronously.
func (s *Service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	in, err := decodeAnalyzeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	report, err := s.Analyze(ctx, in.RepoURL, in.APIKey, nil)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, report)
}

// handleStartRun kicks off an async analysis and returns its run id; progress
// is consumed through the SSE watch endpoint.
func (s *Service) handleStartRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	in, err := decodeAnalyzeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runID, ch := s.runs.create()
	go func() {
		defer s.runs.finish(runID)
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()

		report, err := s.Analyze(ctx, in.RepoURL, in.APIKey, func(phase string) {
			ch <- Event{Phase: phase}
		})
		if err != nil {
			ch <- Event{Phase: PhaseError, Message: err.Error()}
			return
		}
		ch <- Event{Phase: PhaseComplete, Report: report}
	}()

	writeJSON(w, map[string]string{"run_id": runID})
}

// handleWatchSSE streams run events as Server-Sent Events.
func (s *Service) handleWatchSSE(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimPrefix(r.URL.Path, "/api/watch/")
	if runID == "" {
		http.Error(w, "run_id required", http.StatusBadRequest)
		return
	}
	ch, ok := s.runs.get(runID)
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: close\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			payload, _ := json.Marshal(event)
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Phase, payload)
			flusher.Flush()
			if event.Phase == PhaseComplete || event.Phase == PhaseError {
				return
			}
		}
	}
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, snapshot.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, snapshot.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, snapshot.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, snapshot.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
