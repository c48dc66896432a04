package valuation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"valuation_builder/pkg/core/export"
	"valuation_builder/pkg/core/metrics"
	"valuation_builder/pkg/core/session"
	"valuation_builder/pkg/core/summary"
)

type fakeExecutor struct {
	reply string
	err   error
}

func (f *fakeExecutor) ExecutePrompt(ctx context.Context, role, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if options["response_format"] == "json_object" {
		return `{"takeaways": ["Strong margins", "Steady growth"]}`, nil
	}
	return f.reply, nil
}

func newTestHandler(t *testing.T, exec summary.PromptExecutor) (*Handler, *session.Manager) {
	t.Helper()
	sessions := session.NewManager()
	h := NewHandler(summary.NewGenerator(exec), export.NewExporter(t.TempDir()), sessions)
	return h, sessions
}

func postJSON(t *testing.T, fn http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func seededSession(sessions *session.Manager) session.Session {
	return sessions.SetMetrics("", &metrics.CompanyMetrics{
		Name:          "Acme Robotics",
		Industry:      "Industrial Automation",
		Revenue:       2.4,
		NetIncome:     0.36,
		RevenueGrowth: 12.0,
		ProfitMargin:  15.0,
		Source:        metrics.SourcePrivate,
	})
}

func TestHandleSummary_UnknownSession(t *testing.T) {
	h, _ := newTestHandler(t, &fakeExecutor{reply: "fine"})
	w := postJSON(t, h.HandleSummary, summaryRequest{SessionID: "nope"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestHandleSummary_NoMetricsYet(t *testing.T) {
	h, sessions := newTestHandler(t, &fakeExecutor{reply: "fine"})
	created := sessions.SetMetrics("", nil)
	w := postJSON(t, h.HandleSummary, summaryRequest{SessionID: created.ID})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestHandleSummary_StoresResultOnSession(t *testing.T) {
	h, sessions := newTestHandler(t, &fakeExecutor{reply: "Acme is reasonably valued."})
	s := seededSession(sessions)

	w := postJSON(t, h.HandleSummary, summaryRequest{SessionID: s.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp summaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Summary != "Acme is reasonably valued." {
		t.Errorf("summary = %q", resp.Summary)
	}
	if len(resp.Takeaways) != 2 {
		t.Errorf("takeaways = %v, want 2 bullets", resp.Takeaways)
	}

	stored, err := sessions.Get(s.ID)
	if err != nil {
		t.Fatalf("session lost: %v", err)
	}
	if stored.Summary != resp.Summary {
		t.Errorf("session summary = %q, want %q", stored.Summary, resp.Summary)
	}
}

func TestHandleSummary_ProviderFailureStillReturns200(t *testing.T) {
	h, sessions := newTestHandler(t, &fakeExecutor{err: errors.New("provider down")})
	s := seededSession(sessions)

	w := postJSON(t, h.HandleSummary, summaryRequest{SessionID: s.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp summaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Summary != summary.FailurePlaceholder {
		t.Errorf("summary = %q, want the failure placeholder", resp.Summary)
	}
	if len(resp.Takeaways) != 0 {
		t.Errorf("takeaways = %v, want none when the provider is down", resp.Takeaways)
	}
}

func TestHandleExport_RequiresSummaryFirst(t *testing.T) {
	h, sessions := newTestHandler(t, &fakeExecutor{reply: "ok"})
	s := seededSession(sessions)

	w := postJSON(t, h.HandleExport, exportRequest{SessionID: s.ID, Format: "pdf"})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 before a summary exists", w.Code)
	}
}

func TestHandleExport_WritesDocument(t *testing.T) {
	h, sessions := newTestHandler(t, &fakeExecutor{reply: "ok"})
	s := seededSession(sessions)
	if _, err := sessions.SetSummary(s.ID, "Acme looks solid.", []string{"Strong margins"}); err != nil {
		t.Fatalf("seed summary: %v", err)
	}

	w := postJSON(t, h.HandleExport, exportRequest{SessionID: s.ID, Format: "html"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	var resp exportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasSuffix(resp.Path, ".html") {
		t.Errorf("path = %q, want .html file", resp.Path)
	}
}

func TestHandleExport_BadFormat(t *testing.T) {
	h, sessions := newTestHandler(t, &fakeExecutor{reply: "ok"})
	s := seededSession(sessions)
	if _, err := sessions.SetSummary(s.ID, "text", nil); err != nil {
		t.Fatalf("seed summary: %v", err)
	}

	w := postJSON(t, h.HandleExport, exportRequest{SessionID: s.ID, Format: "xlsx"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for unsupported format", w.Code)
	}
}
