package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/diaglens/pkg/config"
	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/errors"
	"github.com/matzehuels/diaglens/pkg/extract"
	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/report"
	"github.com/matzehuels/diaglens/pkg/store"
)

// analyzeRequest submits content for analysis. Either Markdown (scanned
// for fenced blocks) or Diagrams (pre-extracted blocks) must be set.
type analyzeRequest struct {
	Markdown string       `json:"markdown,omitempty"`
	FilePath string       `json:"file_path,omitempty"`
	Diagrams []apiDiagram `json:"diagrams,omitempty"`
	Profile  string       `json:"profile,omitempty"`
	Refresh  bool         `json:"refresh,omitempty"`
}

type apiDiagram struct {
	Content   string `json:"content"`
	FilePath  string `json:"file_path,omitempty"`
	StartLine int    `json:"start_line,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	diagrams, err := req.diagrams()
	if err != nil {
		writeError(w, err)
		return
	}
	if len(diagrams) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "no diagrams in request"))
		return
	}

	resolved, err := s.Config.Resolve(config.Options{Profile: req.Profile})
	if err != nil {
		writeError(w, err)
		return
	}

	results, err := s.Runner.AnalyzeAll(r.Context(), diagrams, pipeline.Options{
		Config:      resolved.Rules,
		Calibration: resolved.Calibration,
		Refresh:     req.Refresh,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	run := &store.Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Profile:   resolved.ProfileName,
		Summary:   report.Summarize(results),
		Results:   results,
	}
	if err := s.Store.Put(r.Context(), run); err != nil {
		s.Logger.Error("failed to store run", "id", run.ID, "err", err)
	}

	writeJSON(w, http.StatusOK, run)
}

// diagrams builds the input set from whichever request shape was used.
func (req *analyzeRequest) diagrams() ([]diagram.Diagram, error) {
	if req.Markdown != "" {
		path := req.FilePath
		if path == "" {
			path = "request.md"
		} else if err := errors.ValidateRelativePath(path); err != nil {
			return nil, err
		}
		return extract.Source(req.Markdown, path), nil
	}

	diagrams := make([]diagram.Diagram, 0, len(req.Diagrams))
	for _, d := range req.Diagrams {
		if d.FilePath != "" {
			if err := errors.ValidateRelativePath(d.FilePath); err != nil {
				return nil, err
			}
		}
		start := d.StartLine
		if start < 1 {
			start = 1
		}
		diagrams = append(diagrams, diagram.New(d.Content, d.FilePath, start))
	}
	return diagrams, nil
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid run id: %s", id))
		return
	}
	run, err := s.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be between 1 and 200"))
			return
		}
		limit = parsed
	}
	runs, err := s.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDialect, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidProfile, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeRunNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, map[string]any{"error": map[string]string{
		"code":    string(errors.GetCode(err)),
		"message": errors.UserMessage(err),
	}})
}
