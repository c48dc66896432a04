// Package prompt is a small prompt library. Templates live in JSON files
// under resources/prompts and are loaded at startup, so prompt wording can
// change without touching code; hardcoded fallbacks keep the binary usable
// when the resources directory is missing.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"
)

// Template is one reusable prompt with metadata.
type Template struct {
	ID             string `json:"id"`       // e.g. "valuation.summary"
	Name           string `json:"name"`     // human-readable name
	Category       string `json:"category"` // e.g. "valuation"
	Description    string `json:"description"`
	SystemPrompt   string `json:"system_prompt"`
	UserPromptTmpl string `json:"user_prompt_template"` // Go text/template
	Version        string `json:"version"`
}

// Render executes the user-prompt template against vars.
func (t *Template) Render(vars map[string]interface{}) (string, error) {
	tmpl, err := template.New(t.ID).Parse(t.UserPromptTmpl)
	if err != nil {
		return "", fmt.Errorf("prompt %s: bad template: %w", t.ID, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("prompt %s: render failed: %w", t.ID, err)
	}
	return buf.String(), nil
}
