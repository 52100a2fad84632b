package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/apply-agent/internal/pipeline"
	"github.com/jonathan/apply-agent/internal/types"
)

// createRunRequest is the POST /runs body.
type createRunRequest struct {
	URL         string                 `json:"url" validate:"required,url"`
	BaseResume  string                 `json:"base_resume"`
	ResumePath  string                 `json:"resume_path"`
	Answers     types.ApplicantAnswers `json:"answers"`
	Constraints map[string]string      `json:"constraints"`
}

// handleCreateRun starts a new application run and returns its ID. The run
// proceeds in the background; progress arrives on the event stream.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	run, err := s.orch.Start(r.Context(), pipeline.Request{
		URL:         req.URL,
		BaseResume:  req.BaseResume,
		ResumePath:  req.ResumePath,
		Answers:     req.Answers,
		Constraints: req.Constraints,
	})
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusAccepted, run.Snapshot())
}

// handleGetRun returns the current snapshot of a run.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.runs.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, run.Snapshot())
}

// handleContinueRun releases the run's approval gate. Signalling is
// idempotent: repeated calls after the first are accepted and do nothing.
func (s *Server) handleContinueRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.runs.Get(id); !ok {
		s.errorResponse(w, http.StatusNotFound, "run not found")
		return
	}
	s.gates.For(id).Signal()
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"run_id": id, "status": "continued"})
}

// handleReleaseRun cancels a run and tears down its resources.
func (s *Server) handleReleaseRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.runs.Get(id); !ok {
		s.errorResponse(w, http.StatusNotFound, "run not found")
		return
	}
	s.runs.Release(id)
	s.jsonResponse(w, http.StatusOK, map[string]string{"run_id": id, "status": "released"})
}

// handleRunEvents streams the run's event bus as server-sent events. Frames
// arrive pre-serialized from the bus; the handler forwards and flushes them
// until the client disconnects or the run is released.
func (s *Server) handleRunEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.runs.Get(id); !ok {
		s.errorResponse(w, http.StatusNotFound, "run not found")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	for frame := range s.bus.Stream(r.Context(), id) {
		if err := sse.WriteFrame(frame); err != nil {
			log.Printf("SSE write failed for run %s: %v", id, err)
			return
		}
	}
}
