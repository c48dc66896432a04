package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// GroqProvider talks to Groq's OpenAI-compatible chat completions endpoint.
// It is the default provider for valuation summaries.
type GroqProvider struct{}

var _ Provider = (*GroqProvider)(nil)

const (
	groqEndpoint     = "https://api.groq.com/openai/v1/chat/completions"
	groqDefaultModel = "meta-llama/llama-4-scout-17b-16e-instruct"
)

type groqRequest struct {
	Messages       []Message       `json:"messages"`
	Model          string          `json:"model"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    float64         `json:"temperature"`
	Stream         bool            `json:"stream"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (p *GroqProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if val, ok := options["api_key"].(string); ok && val != "" {
		apiKey = val
	}
	if apiKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY_MISSING: Please set GROQ_API_KEY env var")
	}

	model := groqDefaultModel
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	maxTokens := 500
	if val, ok := options["max_tokens"].(int); ok && val > 0 {
		maxTokens = val
	}

	temperature := 0.7
	if val, ok := options["temperature"].(float64); ok {
		temperature = val
	}

	reqBody := groqRequest{
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stream:      false,
	}

	// JSON mode when the caller asks for structured output.
	if val, ok := options["response_format"].(string); ok && val == "json_object" {
		reqBody.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("GROQ_MARSHAL_ERROR: %v", err)
	}

	endpoint := groqEndpoint
	if val, ok := options["endpoint"].(string); ok && val != "" {
		endpoint = val
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("GROQ_REQ_CREATE_ERROR: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("GROQ_API_CALL_ERROR: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("GROQ_READ_BODY_ERROR: %v", err)
	}

	var parsed groqResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("GROQ_UNMARSHAL_ERROR: %v (body: %.200s)", err, string(body))
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("GROQ_API_ERROR: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("GROQ_EMPTY_RESPONSE: no choices returned (http %d)", res.StatusCode)
	}

	return parsed.Choices[0].Message.Content, nil
}
