package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"niv-scholar-be/pkg/llm"
)

const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = 800
	DefaultTemperature = 0.7
)

type OpenAIProvider struct {
	apiKey   string
	baseURL  string
	defaults llm.Options
	client   *http.Client
}

// Ensure OpenAIProvider implements LLMProvider
var (
	_ llm.LLMProvider       = &OpenAIProvider{}
	_ llm.CredentialChecker = &OpenAIProvider{}
)

// Request Payload Structure (OpenAI chat completions)
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// NewOpenAIProvider calls the chat-completions API at baseURL. opts override
// the default model, token limit and temperature for every request.
func NewOpenAIProvider(apiKey, baseURL string, opts ...llm.Option) *OpenAIProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		defaults: llm.Apply(llm.Options{
			Model:       DefaultModel,
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		}, opts...),
		// No client timeout; the caller's context bounds the request.
		client: &http.Client{},
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (p *OpenAIProvider) WithHTTPClient(c *http.Client) *OpenAIProvider {
	p.client = c
	return p
}

func (p *OpenAIProvider) CheckCredential() error {
	if p.apiKey == "" {
		return llm.ErrMissingCredential
	}
	return nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if err := p.CheckCredential(); err != nil {
		return "", err
	}

	opts := llm.Apply(p.defaults, options...)

	reqBody := chatRequest{
		Model:       opts.Model,
		Messages:    history,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", llm.NewUpstreamError(resp.StatusCode, string(bodyBytes))
	}

	var payload any
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return strings.TrimSpace(firstChoiceContent(payload)), nil
}

// firstChoiceContent walks choices[0].message.content and yields "" for any
// other shape.
func firstChoiceContent(payload any) string {
	root, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	choices, ok := root["choices"].([]any)
	if !ok || len(choices) == 0 {
		return ""
	}
	choice, ok := choices[0].(map[string]any)
	if !ok {
		return ""
	}
	message, ok := choice["message"].(map[string]any)
	if !ok {
		return ""
	}
	content, _ := message["content"].(string)
	return content
}
