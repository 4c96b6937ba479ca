package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/edunova/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with logging
// middleware. eventRepo may be nil when the audit log is disabled.
// Requests are never retried.
func NewProvider(ctx context.Context, cfg Config, log *zap.Logger, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, cfg.Provider, log, eventRepo), nil
}
