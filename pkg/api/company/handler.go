// Package company exposes the two data-source endpoints: public ticker
// fetch and private form submission. Both store their normalized record in
// the caller's session.
package company

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"valuation_builder/pkg/core/marketdata"
	"valuation_builder/pkg/core/metrics"
	"valuation_builder/pkg/core/private"
	"valuation_builder/pkg/core/session"
)

type Handler struct {
	Public   *marketdata.Adapter
	Private  *private.Adapter
	Sessions *session.Manager
}

func NewHandler(publicAdapter *marketdata.Adapter, privateAdapter *private.Adapter, sessions *session.Manager) *Handler {
	return &Handler{Public: publicAdapter, Private: privateAdapter, Sessions: sessions}
}

type publicRequest struct {
	Ticker    string `json:"ticker"`
	SessionID string `json:"session_id"`
}

type privateRequest struct {
	private.Input
	SessionID string `json:"session_id"`
}

// HandlePublic fetches and normalizes ticker data, then binds it to the session.
func (h *Handler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req publicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	fmt.Printf("[COMPANY] public fetch: %s\n", ticker)

	record, err := h.Public.Fetch(r.Context(), ticker)
	if err != nil {
		writeMetricsError(w, err)
		return
	}

	s := h.Sessions.SetMetrics(req.SessionID, record)
	writeJSON(w, s)
}

// HandlePrivate validates and normalizes the private-company form, then
// binds it to the session. No external calls.
func (h *Handler) HandlePrivate(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req privateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	fmt.Printf("[COMPANY] private submission: %s\n", req.Name)

	record, err := h.Private.Process(req.Input)
	if err != nil {
		writeMetricsError(w, err)
		return
	}

	s := h.Sessions.SetMetrics(req.SessionID, record)
	writeJSON(w, s)
}

// writeMetricsError maps the failure taxonomy onto status codes.
func writeMetricsError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, metrics.ErrInvalidInput), errors.Is(err, metrics.ErrInvalidMetric):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, metrics.ErrDataUnavailable):
		status = http.StatusBadGateway
	}
	http.Error(w, err.Error(), status)
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
