package llm

import (
	"context"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Valid reports whether both role and content are present.
func (m Message) Valid() bool {
	return m.Role != "" && m.Content != ""
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model

	// temperatureSet tells an explicit 0 apart from no temperature at all.
	temperatureSet bool
}

// WithTemperature sets the sampling temperature. 0 is a valid choice.
func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
		o.temperatureSet = true
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Apply folds opts over a copy of the defaults. An empty model or a
// non-positive token limit falls back to the default; a temperature falls back
// only when no option set one.
func Apply(defaults Options, opts ...Option) Options {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Model == "" {
		o.Model = defaults.Model
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaults.MaxTokens
	}
	if !o.temperatureSet {
		o.Temperature = defaults.Temperature
		o.temperatureSet = defaults.temperatureSet
	}
	return o
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response.
	// An empty string with a nil error means the backend answered without content.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}

// CredentialChecker is implemented by providers that need a credential before
// they can be called.
type CredentialChecker interface {
	CheckCredential() error
}

// Simulator is implemented by providers that never contact an upstream.
type Simulator interface {
	Simulated() bool
}
