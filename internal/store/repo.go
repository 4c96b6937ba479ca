package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	Purpose   string    // exact purpose match (LLM events only)
	RequestID string    // calls made for one generation (LLM events only)
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	RequestID    string // generation request that made the call, if any
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// GenerationEventData records one submitted generation request and its
// outcome.
type GenerationEventData struct {
	RequestID   string
	AgeGroup    string
	ContentType string
	Topic       string
	Failed      bool
	ErrorKind   string
	Items       int // parsed cards or questions, 0 for plain text
	LatencyMs   int64
}

// GenerationEventRecord is a stored generation event.
type GenerationEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GenerationEventData
}

// EventRepo provides append and query access to audit events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendGeneration records a generation request outcome.
	AppendGeneration(ctx context.Context, data GenerationEventData) error

	// QueryGenerations returns generation events, newest first.
	QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEventRecord, error)
}
