// Package valuation exposes summary generation and document export for a
// session's normalized metrics record.
package valuation

import (
	"encoding/json"
	"fmt"
	"net/http"

	"valuation_builder/pkg/core/export"
	"valuation_builder/pkg/core/session"
	"valuation_builder/pkg/core/summary"
	"valuation_builder/pkg/core/utils"
)

type Handler struct {
	Generator *summary.Generator
	Exporter  *export.Exporter
	Sessions  *session.Manager
}

func NewHandler(generator *summary.Generator, exporter *export.Exporter, sessions *session.Manager) *Handler {
	return &Handler{Generator: generator, Exporter: exporter, Sessions: sessions}
}

type summaryRequest struct {
	SessionID string `json:"session_id"`
}

type summaryResponse struct {
	SessionID   string   `json:"session_id"`
	Summary     string   `json:"summary"`
	SummaryHTML string   `json:"summary_html,omitempty"`
	Takeaways   []string `json:"takeaways,omitempty"`
}

// HandleSummary generates the valuation prose for the session's record and
// stores it as the session's last summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.Sessions.Get(req.SessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if s.Metrics == nil {
		http.Error(w, "no company data in session", http.StatusConflict)
		return
	}

	fmt.Printf("[SUMMARY] generating for %s (session %s)\n", s.Metrics.Name, s.ID)
	text := h.Generator.Generate(r.Context(), s.Metrics)

	// Takeaways are an enrichment; a failure only costs the bullets.
	takeaways, err := h.Generator.KeyTakeaways(r.Context(), s.Metrics)
	if err != nil {
		fmt.Printf("[SUMMARY] takeaways skipped: %v\n", err)
		takeaways = nil
	}

	if _, err := h.Sessions.SetSummary(s.ID, text, takeaways); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	resp := summaryResponse{SessionID: s.ID, Summary: text, Takeaways: takeaways}
	if html, err := utils.RenderHTML(text); err == nil {
		resp.SummaryHTML = html
	}
	writeJSON(w, resp)
}

type exportRequest struct {
	SessionID string `json:"session_id"`
	Format    string `json:"format"` // "pdf", "docx", or "html"
}

type exportResponse struct {
	Path string `json:"path"`
}

// HandleExport writes the session's metrics and summary to a document file.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.Sessions.Get(req.SessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if s.Metrics == nil {
		http.Error(w, "no company data in session", http.StatusConflict)
		return
	}
	if s.Summary == "" {
		http.Error(w, "generate a summary before exporting", http.StatusConflict)
		return
	}

	path, err := h.Exporter.Export(s.Metrics, s.Summary, s.Takeaways, req.Format)
	if err != nil {
		// ErrExportFailure carries the underlying cause; nothing partial
		// was left on disk.
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, exportResponse{Path: path})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
