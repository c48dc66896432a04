package company

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"valuation_builder/pkg/core/marketdata"
	"valuation_builder/pkg/core/private"
	"valuation_builder/pkg/core/session"
)

func newTestHandler(t *testing.T, provider http.HandlerFunc) (*Handler, *session.Manager) {
	t.Helper()
	server := httptest.NewServer(provider)
	t.Cleanup(server.Close)
	client := marketdata.NewClient(marketdata.Config{BaseURL: server.URL, Timeout: 5 * time.Second}, nil)
	sessions := session.NewManager()
	return NewHandler(marketdata.NewAdapter(client), private.NewAdapter(), sessions), sessions
}

func TestHandlePrivate_CreatesSessionWithMetrics(t *testing.T) {
	h, sessions := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("private path must not call the market provider")
	})

	body := `{
		"name": "Acme Holdings",
		"industry": "Industrial Tools",
		"revenue": "1200",
		"revenue_growth": "12.5",
		"profit_margin": "15",
		"ebitda_margin": "22",
		"competitors": "Globex, Initech"
	}`
	req := httptest.NewRequest("POST", "/api/company/private", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandlePrivate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var s session.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("response not a session: %v", err)
	}
	if s.ID == "" || s.Metrics == nil {
		t.Fatalf("incomplete session: %+v", s)
	}
	if s.Metrics.Revenue != 1.2 {
		t.Errorf("Revenue = %v, want 1.2", s.Metrics.Revenue)
	}
	if len(s.Metrics.Competitors) != 2 {
		t.Errorf("Competitors = %v", s.Metrics.Competitors)
	}
	if sessions.Count() != 1 {
		t.Errorf("session count = %d", sessions.Count())
	}
}

func TestHandlePrivate_InvalidInputIs422(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	body := `{"name": "Acme", "industry": "Tools", "revenue": "abc",
		"revenue_growth": "1", "profit_margin": "1", "ebitda_margin": "1",
		"competitors": "X"}`
	req := httptest.NewRequest("POST", "/api/company/private", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandlePrivate(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestHandlePublic_ProviderDownIs502(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})

	req := httptest.NewRequest("POST", "/api/company/public", strings.NewReader(`{"ticker":"EXMP"}`))
	rec := httptest.NewRecorder()
	h.HandlePublic(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestHandlePublic_NewFetchClearsSummary(t *testing.T) {
	payload := `{"quoteSummary":{"result":[{
		"price": {"longName": "Example Corp", "marketCap": {"raw": 1.0e12}},
		"incomeStatementHistory": {"incomeStatementHistory": [
			{"totalRevenue": {"raw": 1.2e11}, "netIncome": {"raw": 3.0e10}},
			{"totalRevenue": {"raw": 1.0e11}, "netIncome": {"raw": 2.0e10}}
		]}
	}],"error":null}}`
	h, sessions := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})

	// Seed a session with a summary, then refetch into the same session.
	first := httptest.NewRequest("POST", "/api/company/public", strings.NewReader(`{"ticker":"EXMP"}`))
	rec := httptest.NewRecorder()
	h.HandlePublic(rec, first)
	var s session.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if _, err := sessions.SetSummary(s.ID, "stale analysis", nil); err != nil {
		t.Fatal(err)
	}

	second := httptest.NewRequest("POST", "/api/company/public",
		strings.NewReader(fmt.Sprintf(`{"ticker":"EXMP","session_id":%q}`, s.ID)))
	rec = httptest.NewRecorder()
	h.HandlePublic(rec, second)

	refreshed, err := sessions.Get(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.Summary != "" {
		t.Errorf("summary not invalidated by new fetch: %q", refreshed.Summary)
	}
}
