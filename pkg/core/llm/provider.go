// Package llm abstracts the chat-completion providers used to write
// valuation prose. Providers are stateless; credentials come from the
// environment or from per-call options so tests can inject fakes.
package llm

import (
	"context"
)

// Provider is the interface every LLM backend implements.
type Provider interface {
	// GenerateResponse sends one system+user exchange and returns the
	// model's text. The options bag carries provider-specific knobs
	// (model, api_key, max_tokens, temperature, response_format...).
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// Shared chat-completion wire types for the OpenAI-compatible providers.

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ResponseFormat struct {
	Type string `json:"type"` // "text" or "json_object"
}
