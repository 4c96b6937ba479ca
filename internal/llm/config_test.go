package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"EDUNOVA_LLM_PROVIDER", "EDUNOVA_GEMINI_API_KEY", "EDUNOVA_GEMINI_MODEL",
		"EDUNOVA_OPENAI_API_KEY", "EDUNOVA_ANTHROPIC_API_KEY", "EDUNOVA_OPENROUTER_API_KEY",
		"EDUNOVA_LLM_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-flash", cfg.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("EDUNOVA_LLM_PROVIDER", "openai")
	t.Setenv("EDUNOVA_OPENAI_API_KEY", "sk-env")
	t.Setenv("EDUNOVA_GEMINI_MODEL", "gemini-pro")
	t.Setenv("EDUNOVA_LLM_TIMEOUT", "15s")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestDiscover_FillsSelectedProviderKey(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-std")

	cfg := DefaultConfig()
	assert.True(t, cfg.Discover())
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "g-std", cfg.Gemini.APIKey)
}

func TestDiscover_SwitchesToProviderWithKey(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg := DefaultConfig()
	assert.True(t, cfg.Discover())
	assert.Equal(t, "anthropic", cfg.Provider)
}

func TestDiscover_ExplicitKeyWins(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-std")

	cfg := DefaultConfig()
	cfg.Gemini.APIKey = "g-explicit"
	assert.True(t, cfg.Discover())
	assert.Equal(t, "g-explicit", cfg.Gemini.APIKey)
}

func TestDiscover_NothingFound(t *testing.T) {
	clearProviderEnv(t)
	cfg := DefaultConfig()
	assert.False(t, cfg.Discover())
}
