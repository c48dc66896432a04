package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"valuation_builder/pkg/core/metrics"
)

type fakeExecutor struct {
	lastRole   string
	lastPrompt string
	lastSystem string
	response   string
	err        error
}

func (f *fakeExecutor) ExecutePrompt(ctx context.Context, role, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	f.lastRole = role
	f.lastPrompt = prompt
	f.lastSystem = systemPrompt
	return f.response, f.err
}

func sampleMetrics() *metrics.CompanyMetrics {
	return &metrics.CompanyMetrics{
		Name:          "Example Corp",
		Industry:      "Consumer Electronics",
		Revenue:       120.0,
		RevenueGrowth: 20.0,
		NetIncome:     30.0,
		ProfitMargin:  25.0,
		Source:        metrics.SourcePublic,
	}
}

func TestGenerate_EmbedsFormattedFigures(t *testing.T) {
	fake := &fakeExecutor{response: "  A balanced analysis.  "}
	got := NewGenerator(fake).Generate(context.Background(), sampleMetrics())

	if got != "A balanced analysis." {
		t.Errorf("Generate = %q, want trimmed response", got)
	}
	if fake.lastRole != "summary" {
		t.Errorf("role = %q", fake.lastRole)
	}
	for _, fragment := range []string{
		"Example Corp",
		"$120.00B",
		"20.0%",
		"25.0%",
		"Consumer Electronics",
		"150-200 words",
	} {
		if !strings.Contains(fake.lastPrompt, fragment) {
			t.Errorf("prompt missing %q:\n%s", fragment, fake.lastPrompt)
		}
	}
	if !strings.Contains(fake.lastSystem, "financial analyst") {
		t.Errorf("system prompt = %q", fake.lastSystem)
	}
}

func TestGenerate_FailureDegradesToPlaceholder(t *testing.T) {
	fake := &fakeExecutor{err: errors.New("provider down")}
	got := NewGenerator(fake).Generate(context.Background(), sampleMetrics())
	if got != FailurePlaceholder {
		t.Errorf("Generate = %q, want placeholder", got)
	}
}

func TestKeyTakeaways_RepairsSloppyJSON(t *testing.T) {
	// Single quotes, trailing comma, wrapped in a code fence; the lenient
	// decode path must still produce the bullets.
	fake := &fakeExecutor{response: "```json\n{'takeaways': ['Strong margins', 'Premium multiple',]}\n```"}
	got, err := NewGenerator(fake).KeyTakeaways(context.Background(), sampleMetrics())
	if err != nil {
		t.Fatalf("KeyTakeaways: %v", err)
	}
	if len(got) != 2 || got[0] != "Strong margins" || got[1] != "Premium multiple" {
		t.Errorf("takeaways = %v", got)
	}
	if fake.lastRole != "takeaways" {
		t.Errorf("role = %q", fake.lastRole)
	}
}

func TestKeyTakeaways_FailureReturnsError(t *testing.T) {
	fake := &fakeExecutor{err: errors.New("quota")}
	if _, err := NewGenerator(fake).KeyTakeaways(context.Background(), sampleMetrics()); err == nil {
		t.Fatal("expected error when provider fails")
	}
}
