package llm

import (
	"errors"
	"fmt"
)

// ErrRateLimit means the provider rejected the request with HTTP 429.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited by LLM provider: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the provider answered but the answer carried
// no usable text.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrContentBlocked means the provider's safety layer withheld the output.
// Reason is the provider's own label, e.g. "SAFETY" or "content_filter".
type ErrContentBlocked struct {
	Reason string
}

func (e *ErrContentBlocked) Error() string {
	return fmt.Sprintf("LLM output blocked by provider (%s)", e.Reason)
}

// ErrProviderUnavailable means the provider could not be reached or
// answered with a server error.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means generation stopped at MaxTokens before any
// text was returned.
type ErrMaxTokensExceeded struct{}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// IsNoContent reports whether err means the provider answered without
// usable text, as opposed to a transport failure.
func IsNoContent(err error) bool {
	var (
		inv       *ErrInvalidResponse
		blocked   *ErrContentBlocked
		truncated *ErrMaxTokensExceeded
	)
	return errors.As(err, &inv) || errors.As(err, &blocked) || errors.As(err, &truncated)
}
