// Package summary turns a normalized metrics record into valuation prose
// via the configured LLM provider.
package summary

import (
	"context"
	"fmt"

	"valuation_builder/pkg/core/metrics"
	"valuation_builder/pkg/core/prompt"
	"valuation_builder/pkg/core/utils"
)

// Placeholder returned when generation fails. The session keeps working;
// the user can retry or switch providers.
const FailurePlaceholder = "Error generating valuation summary. Please check your LLM API key and try again."

// Fallback wording used when the prompt library was not loaded.
const (
	fallbackSystemPrompt = "You are an experienced financial analyst specializing in company valuations."

	fallbackUserTmpl = `Generate a concise (150-200 words) valuation summary for {{.Name}}.

Key metrics:
- Revenue: ${{.Revenue}}B
- Revenue Growth: {{.RevenueGrowth}}%
- Profit Margin: {{.ProfitMargin}}%
- Industry: {{.Industry}}

Focus on:
1. Company's market position and competitive advantages
2. Financial performance and growth trends
3. Key valuation drivers and metrics
4. Risks and opportunities
5. Overall valuation perspective

Please provide a professional, balanced analysis that would be suitable for investors.`

	fallbackTakeawaysSystem = `You are an experienced financial analyst. Respond ONLY with a JSON object of the form {"takeaways": ["..."]} containing 3 to 5 short bullet strings. No prose outside the JSON.`

	fallbackTakeawaysTmpl = `List the key valuation takeaways for {{.Name}} ({{.Industry}}) given revenue ${{.Revenue}}B, revenue growth {{.RevenueGrowth}}%, and profit margin {{.ProfitMargin}}%.`
)

// PromptExecutor runs one prompt under a named role. Satisfied by
// agent.Manager; tests substitute fakes, so no credential state is ambient.
type PromptExecutor interface {
	ExecutePrompt(ctx context.Context, role string, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

type Generator struct {
	executor PromptExecutor
}

func NewGenerator(executor PromptExecutor) *Generator {
	return &Generator{executor: executor}
}

// Generate produces the prose summary for m. Provider failures degrade to
// FailurePlaceholder rather than propagating; the caller treats the result
// as display text either way.
func (g *Generator) Generate(ctx context.Context, m *metrics.CompanyMetrics) string {
	systemPrompt, userPrompt, err := g.renderPrompt(prompt.ValuationSummary, fallbackSystemPrompt, fallbackUserTmpl, m)
	if err != nil {
		fmt.Printf("[SUMMARY] prompt render failed: %v\n", err)
		return FailurePlaceholder
	}

	text, err := g.executor.ExecutePrompt(ctx, "summary", userPrompt, systemPrompt, map[string]interface{}{})
	if err != nil {
		fmt.Printf("[SUMMARY] generation failed for %s: %v\n", m.Name, err)
		return FailurePlaceholder
	}

	return utils.CleanMarkdown(text)
}

// KeyTakeaways asks for 3-5 structured bullets in JSON mode. LLM output is
// repaired and decoded leniently before use. Unlike Generate, failures are
// returned: takeaways are an optional enrichment the caller may skip.
func (g *Generator) KeyTakeaways(ctx context.Context, m *metrics.CompanyMetrics) ([]string, error) {
	systemPrompt, userPrompt, err := g.renderPrompt(prompt.ValuationTakeaways, fallbackTakeawaysSystem, fallbackTakeawaysTmpl, m)
	if err != nil {
		return nil, err
	}

	text, err := g.executor.ExecutePrompt(ctx, "takeaways", userPrompt, systemPrompt, map[string]interface{}{
		"response_format": "json_object",
	})
	if err != nil {
		return nil, fmt.Errorf("takeaways generation failed: %w", err)
	}

	var parsed struct {
		Takeaways []string `json:"takeaways"`
	}
	if err := utils.DecodeLenientJSON(utils.CleanMarkdown(text), &parsed); err != nil {
		return nil, fmt.Errorf("takeaways response unusable: %w", err)
	}
	return parsed.Takeaways, nil
}

func (g *Generator) renderPrompt(id, fallbackSystem, fallbackTmpl string, m *metrics.CompanyMetrics) (string, string, error) {
	vars := promptVars(m)

	if t, err := prompt.Get().GetPrompt(id); err == nil {
		user, renderErr := t.Render(vars)
		if renderErr == nil {
			return t.SystemPrompt, user, nil
		}
		fmt.Printf("[SUMMARY] registry prompt %s broken, using fallback: %v\n", id, renderErr)
	}

	t := &prompt.Template{ID: id, UserPromptTmpl: fallbackTmpl}
	user, err := t.Render(vars)
	if err != nil {
		return "", "", err
	}
	return fallbackSystem, user, nil
}

// promptVars pre-formats the figures the way the documents do: monetary to
// two decimals, rates to one.
func promptVars(m *metrics.CompanyMetrics) map[string]interface{} {
	return map[string]interface{}{
		"Name":          m.Name,
		"Industry":      m.Industry,
		"Revenue":       fmt.Sprintf("%.2f", m.Revenue),
		"RevenueGrowth": fmt.Sprintf("%.1f", m.RevenueGrowth),
		"ProfitMargin":  fmt.Sprintf("%.1f", m.ProfitMargin),
	}
}
