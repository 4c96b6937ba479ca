package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string `yaml:"provider"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`

	// Timeout is the maximum duration for a single LLM request. Default: 60s.
	Timeout time.Duration `yaml:"timeout"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gemini-flash"
	BaseURL string `yaml:"base_url"` // Optional. Override for proxies and tests.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "claude-haiku"
	BaseURL string `yaml:"base_url"` // Optional. Override for proxies and tests.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.0-flash-001"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-001",
		},
		Timeout: 60 * time.Second,
	}
}

// ApplyEnv overlays EDUNOVA_* environment variables onto c.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Provider, "EDUNOVA_LLM_PROVIDER")

	setFromEnv(&c.Gemini.APIKey, "EDUNOVA_GEMINI_API_KEY")
	setFromEnv(&c.Gemini.Model, "EDUNOVA_GEMINI_MODEL")
	setFromEnv(&c.Gemini.BaseURL, "EDUNOVA_GEMINI_BASE_URL")

	setFromEnv(&c.OpenAI.APIKey, "EDUNOVA_OPENAI_API_KEY")
	setFromEnv(&c.OpenAI.Model, "EDUNOVA_OPENAI_MODEL")
	setFromEnv(&c.OpenAI.BaseURL, "EDUNOVA_OPENAI_BASE_URL")

	setFromEnv(&c.Anthropic.APIKey, "EDUNOVA_ANTHROPIC_API_KEY")
	setFromEnv(&c.Anthropic.Model, "EDUNOVA_ANTHROPIC_MODEL")
	setFromEnv(&c.Anthropic.BaseURL, "EDUNOVA_ANTHROPIC_BASE_URL")

	setFromEnv(&c.OpenRouter.APIKey, "EDUNOVA_OPENROUTER_API_KEY")
	setFromEnv(&c.OpenRouter.Model, "EDUNOVA_OPENROUTER_MODEL")

	if v := os.Getenv("EDUNOVA_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// Discover fills in a missing API key for the selected provider from the
// standard vendor variables. When the selected provider still has no key,
// it probes Gemini → OpenAI → Anthropic → OpenRouter and switches to the
// first provider whose key is found. Returns false if no key was found.
func (c *Config) Discover() bool {
	std := []struct {
		provider string
		env      string
		key      *string
	}{
		{"gemini", "GEMINI_API_KEY", &c.Gemini.APIKey},
		{"openai", "OPENAI_API_KEY", &c.OpenAI.APIKey},
		{"anthropic", "ANTHROPIC_API_KEY", &c.Anthropic.APIKey},
		{"openrouter", "OPENROUTER_API_KEY", &c.OpenRouter.APIKey},
	}

	for _, s := range std {
		if *s.key == "" {
			*s.key = os.Getenv(s.env)
		}
	}

	if c.Provider == "mock" || c.Validate() == nil {
		return true
	}
	for _, s := range std {
		if *s.key != "" {
			c.Provider = s.provider
			return true
		}
	}
	return false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY (or EDUNOVA_GEMINI_API_KEY) is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY (or EDUNOVA_OPENAI_API_KEY) is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY (or EDUNOVA_ANTHROPIC_API_KEY) is required for the anthropic provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY (or EDUNOVA_OPENROUTER_API_KEY) is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
