package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{
		APIKey:  "test-key",
		Model:   "claude-haiku",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return p
}

func anthropicReply(stop string, texts ...string) map[string]any {
	blocks := make([]map[string]any, len(texts))
	for i, text := range texts {
		blocks[i] = map[string]any{"type": "text", "text": text}
	}
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     blocks,
		"model":       "claude-haiku-4-5",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_HappyPathSendsSampling(t *testing.T) {
	var body map[string]any
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicReply("end_turn",
			"QUESTION 1: What do plants need?\n",
			"A) Sun\nB) Salt\nC) Sand\nD) Smoke\nCORRECT: A"))
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages:    []Message{{Role: RoleUser, Content: "Create a short quiz for children aged 6-8 on the topic: Plants."}},
		MaxTokens:   8192,
		Temperature: 0.7,
		TopK:        40,
		TopP:        0.95,
	})
	require.NoError(t, err)
	assert.Equal(t, "QUESTION 1: What do plants need?\nA) Sun\nB) Salt\nC) Sand\nD) Smoke\nCORRECT: A", resp.Content)
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	assert.Equal(t, "claude-haiku-4-5", body["model"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-6)
	assert.InDelta(t, 40, body["top_k"], 1e-6)
	assert.NotContains(t, body, "top_p")
}

func TestAnthropicProvider_Refusal(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicReply("refusal"))
	})

	_, err := p.Generate(context.Background(), UserPrompt("Create flashcards about weapons"))
	var blocked *ErrContentBlocked
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "refusal", blocked.Reason)
}

func TestAnthropicProvider_TruncatedWithoutText(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicReply("max_tokens"))
	})

	_, err := p.Generate(context.Background(), UserPrompt("x"))
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestAnthropicProvider_HTTPErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   string
		check  func(t *testing.T, err error)
	}{
		{"rate limit", http.StatusTooManyRequests, "rate_limit_error", func(t *testing.T, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{"server error", http.StatusInternalServerError, "api_error", func(t *testing.T, err error) {
			var unavail *ErrProviderUnavailable
			assert.ErrorAs(t, err, &unavail)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"type":  "error",
					"error": map[string]any{"type": tt.kind, "message": tt.name},
				})
			})
			_, err := p.Generate(context.Background(), UserPrompt("x"))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-5", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}
