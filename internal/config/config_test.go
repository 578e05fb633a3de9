package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "OPENAI_API_KEY", "OPENAI_MODEL", "LLM_PROVIDER", "LLM_MAX_TOKENS", "LLM_TEMPERATURE", "INSIGHT_STORAGE", "REVEAL_INTERVAL", "GO_ENV"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Empty(t, cfg.Ai.OpenAIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Ai.OpenAIModel)
	assert.Equal(t, "openai", cfg.Ai.LLMProvider)
	assert.Equal(t, "memory", cfg.Scholar.InsightStorage)
	assert.Equal(t, 800, cfg.Ai.MaxTokens)
	assert.Equal(t, 0.7, cfg.Ai.Temperature)
	assert.Equal(t, 20*time.Millisecond, cfg.Scholar.RevealInterval)
	assert.Equal(t, time.Hour, cfg.Scholar.SessionTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GO_ENV", "production")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("LLM_PROVIDER", "simulated")
	t.Setenv("LLM_MAX_TOKENS", "256")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("INSIGHT_STORAGE", "redis")
	t.Setenv("REVEAL_INTERVAL", "5ms")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.App.OtelEnabled)
	assert.Equal(t, "sk-test", cfg.Ai.OpenAIKey)
	assert.Equal(t, "gpt-4o", cfg.Ai.OpenAIModel)
	assert.Equal(t, "simulated", cfg.Ai.LLMProvider)
	assert.Equal(t, 256, cfg.Ai.MaxTokens)
	assert.Equal(t, 0.2, cfg.Ai.Temperature)
	assert.Equal(t, "redis", cfg.Scholar.InsightStorage)
	assert.Equal(t, 5*time.Millisecond, cfg.Scholar.RevealInterval)
}

func TestMalformedNumbersFallBack(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "lots")
	t.Setenv("WELCOME_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 800, cfg.Ai.MaxTokens)
	assert.Equal(t, time.Second, cfg.Scholar.WelcomeDelay)
}
