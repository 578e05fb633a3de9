package factory

import (
	"fmt"

	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/llm/openai"
	"niv-scholar-be/pkg/llm/simulated"
)

type Params struct {
	Provider    string // "openai" | "simulated"
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

func NewLLMProvider(p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "", "openai":
		return openai.NewOpenAIProvider(p.APIKey, p.BaseURL,
			llm.WithModel(p.Model),
			llm.WithMaxTokens(p.MaxTokens),
			llm.WithTemperature(p.Temperature),
		), nil
	case "simulated":
		return simulated.NewSimulatedProvider(nil, nil), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
