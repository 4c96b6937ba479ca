// Package generation turns a content request into generated text through an
// LLM provider, with a fixed sampling policy and a single fallback message
// for every failure.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/llm"
	"github.com/abhisek/edunova/internal/parse"
	"github.com/abhisek/edunova/internal/prompt"
	"github.com/abhisek/edunova/internal/store"
)

// Sampling policy applied to every request. Not configurable per call.
const (
	Temperature     = 0.7
	TopK            = 40
	TopP            = 0.95
	MaxOutputTokens = 8192
)

// FallbackMessage replaces the result text whenever generation fails.
const FallbackMessage = "⚠️ Error generating content. Please check your API key and try again."

// Generator produces text for a fully built prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client is the Generator backed by an llm.Provider.
type Client struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewClient creates a Client. A zero timeout means no per-request deadline
// beyond the caller's context.
func NewClient(p llm.Provider, timeout time.Duration) *Client {
	return &Client{provider: p, timeout: timeout}
}

// Generate sends prompt with the fixed sampling policy and returns the text
// of the first candidate. It never retries.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := llm.UserPrompt(prompt)
	req.Temperature = Temperature
	req.TopK = TopK
	req.TopP = TopP
	req.MaxTokens = MaxOutputTokens

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", &Error{Kind: KindMalformedResponse, Err: errors.New("empty candidate text")}
	}
	return resp.Content, nil
}

// classify maps provider errors onto failure kinds. Blocked or truncated
// output counts as a response without candidate text.
func classify(err error) error {
	if llm.IsNoContent(err) {
		return &Error{Kind: KindMalformedResponse, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}

// Result is the outcome of one submitted request. Text always holds what
// should be displayed: the generated text, or FallbackMessage on failure.
type Result struct {
	ID      string
	Request content.Request
	Text    string
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the result carries the fallback message.
func (r Result) Failed() bool { return r.Err != nil }

// Runner validates requests, builds prompts and calls a Generator.
type Runner struct {
	gen  Generator
	log  *zap.Logger
	repo store.EventRepo // nil when auditing is off
}

// NewRunner creates a Runner. log and repo may be nil.
func NewRunner(gen Generator, log *zap.Logger, repo store.EventRepo) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{gen: gen, log: log, repo: repo}
}

// Run generates content for req. Validation errors are returned as-is and
// nothing is sent; every later failure is folded into a Result carrying
// FallbackMessage.
func (r *Runner) Run(ctx context.Context, req content.Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{ID: uuid.NewString(), Request: req}
	log := r.log.With(
		zap.String("request_id", res.ID),
		zap.String("content_type", string(req.ContentType)),
		zap.String("age_group", string(req.AgeGroup)),
	)

	start := time.Now()
	text, err := r.generate(llm.WithRequestID(ctx, res.ID), req)
	res.Elapsed = time.Since(start)

	if err != nil {
		res.Err = err
		res.Text = FallbackMessage
		log.Warn("generation failed", zap.Error(err), zap.Duration("elapsed", res.Elapsed))
	} else {
		res.Text = text
		log.Info("generation finished", zap.Int("chars", len(text)), zap.Duration("elapsed", res.Elapsed))
	}

	r.audit(ctx, res)
	return res, nil
}

func (r *Runner) generate(ctx context.Context, req content.Request) (string, error) {
	msg, err := prompt.ForRequest(req)
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}
	return r.gen.Generate(llm.WithPurpose(ctx, string(req.ContentType)), msg)
}

// audit records the outcome when an audit repo is configured.
func (r *Runner) audit(ctx context.Context, res Result) {
	if r.repo == nil {
		return
	}
	data := store.GenerationEventData{
		RequestID:   res.ID,
		AgeGroup:    string(res.Request.AgeGroup),
		ContentType: string(res.Request.ContentType),
		Topic:       res.Request.Topic,
		Failed:      res.Failed(),
		LatencyMs:   res.Elapsed.Milliseconds(),
	}
	if res.Err != nil {
		data.ErrorKind = KindOf(res.Err).String()
	} else {
		data.Items = parsedItems(res.Request.ContentType, res.Text)
	}
	if err := r.repo.AppendGeneration(ctx, data); err != nil {
		r.log.Warn("failed to record generation event", zap.Error(err))
	}
}

// parsedItems counts the cards or questions that parse out of text, without
// the placeholder.
func parsedItems(ct content.ContentType, text string) int {
	switch ct {
	case content.Flashcards:
		cards, _ := parse.FlashcardsStrict(text)
		return len(cards)
	case content.Quiz:
		questions, _ := parse.QuizStrict(text)
		return len(questions)
	}
	return 0
}
