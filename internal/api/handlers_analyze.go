package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/clausekit/clausekit/internal/analyzer"
	"github.com/clausekit/clausekit/internal/catalog"
	"github.com/clausekit/clausekit/internal/export"
	"github.com/clausekit/clausekit/internal/parser"
	"github.com/clausekit/clausekit/internal/pipeline"
	"github.com/clausekit/clausekit/internal/segment"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleAnalyze accepts a multipart document upload and queues an
// asynchronous analysis job.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	categories := parseCategories(r.Form["categories"])
	// Reject unknown labels now rather than failing the job later.
	if err := s.validateCategories(categories); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:         uuid.NewString(),
		Status:     pipeline.StatusQueued,
		Phase:      "queued",
		Filename:   filename,
		Title:      r.FormValue("title"),
		Categories: categories,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/analyze/%s/status", job.ID),
	})
}

// analyzeTextRequest is the synchronous analysis payload: pre-extracted
// text plus optional page markers, for callers that do their own
// extraction.
type analyzeTextRequest struct {
	Text       string               `json:"text"`
	Categories []string             `json:"categories"`
	Markers    []segment.PageMarker `json:"page_markers"`
}

// handleAnalyzeText runs the engine synchronously on raw text.
func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req analyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	res, err := s.orchestrator.Analyzer().Analyze(req.Text, req.Markers, req.Categories)
	if err != nil {
		var unknown *catalog.UnknownCategoryError
		if errors.As(err, &unknown) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (s *Server) handleAnalyzeStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleAnalyzeResult(w http.ResponseWriter, r *http.Request) {
	if _, res, ok := s.finishedJob(w, r); ok {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	}
}

func (s *Server) handleAnalyzeExport(w http.ResponseWriter, r *http.Request) {
	job, res, ok := s.finishedJob(w, r)
	if !ok {
		return
	}
	name := strings.TrimSuffix(job.Filename, filepath.Ext(job.Filename))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="clauses_%s.csv"`, name))
	if err := export.WriteCSV(w, res); err != nil {
		s.log.Error("csv export failed", "job_id", job.ID, "error", err)
	}
}

// finishedJob resolves the jobID route param to a completed job and its
// result, writing the error response itself when that is not possible.
func (s *Server) finishedJob(w http.ResponseWriter, r *http.Request) (*pipeline.Job, *analyzer.Result, bool) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, nil, false
	}
	snap := job.Snapshot()
	if !snap.Status.Done() {
		jsonError(w, fmt.Sprintf("job not finished (status %s)", snap.Status), http.StatusConflict)
		return nil, nil, false
	}
	if snap.Status == pipeline.StatusFailed {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "analysis failed",
			"detail": snap.Progress.Errors,
		})
		return nil, nil, false
	}
	res := job.Result()
	if res == nil {
		jsonError(w, "result no longer available", http.StatusGone)
		return nil, nil, false
	}
	return job, res, true
}

func (s *Server) validateCategories(categories []string) error {
	cat := s.orchestrator.Analyzer().Catalog()
	for _, label := range categories {
		if !cat.HasCategory(label) {
			return &catalog.UnknownCategoryError{Label: label}
		}
	}
	return nil
}

// parseCategories flattens repeated form values and comma-separated
// lists into one label slice.
func parseCategories(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
