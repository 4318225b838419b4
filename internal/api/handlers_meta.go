package api

import (
	"encoding/json"
	"net/http"
)

// handleCategories lists the clause categories the catalog can classify.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cat := s.orchestrator.Analyzer().Catalog()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"categories": cat.Categories(),
	})
}

// handleAnalysisStats reports rolling analysis latency stats.
func (s *Server) handleAnalysisStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.orchestrator.Stats().Snapshot(),
	})
}
