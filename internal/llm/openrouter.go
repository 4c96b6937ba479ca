package llm

import (
	"errors"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter ranks apps by these attribution headers.
const (
	openRouterReferer = "https://github.com/abhisek/edunova"
	openRouterTitle   = "EduNova"
)

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible endpoint.
// Model IDs are vendor-prefixed ("google/gemini-2.0-flash-001") and are
// passed through unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	headers := http.Header{}
	headers.Set("HTTP-Referer", openRouterReferer)
	headers.Set("X-Title", openRouterTitle)

	return &OpenRouterProvider{
		OpenAIProvider: newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model, headers),
	}, nil
}
