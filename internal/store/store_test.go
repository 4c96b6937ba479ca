package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"llm_request_events", "generation_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.EventRepo().AppendLLMRequest(context.Background(), LLMRequestEventData{Model: "m", Success: true}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	events, err := s2.EventRepo().QueryLLMEvents(context.Background(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestFailedAppendKeepsSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendGeneration(ctx, GenerationEventData{RequestID: "a", AgeGroup: "6-8", ContentType: "quiz", Topic: "t"}))

	_, err := s.events.append(ctx, "no_such_table", []string{"x"}, 1)
	require.Error(t, err)

	require.NoError(t, repo.AppendGeneration(ctx, GenerationEventData{RequestID: "b", AgeGroup: "6-8", ContentType: "quiz", Topic: "t"}))
	events, err := repo.QueryGenerations(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, []int64{2, 1}, []int64{events[0].Sequence, events[1].Sequence})
}

func TestLLMEvents_FilterByRequestID(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m", Purpose: "quiz", RequestID: "gen-1", Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m", Purpose: "quiz", RequestID: "gen-2", Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m", Purpose: "quiz", Success: true}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{RequestID: "gen-2"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "gen-2", events[0].RequestID)

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Empty(t, all[0].RequestID)
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini-2.0-flash", Model: "gemini-2.0-flash", Purpose: "quiz",
		InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true,
		RequestBody: "[user]\nCreate a short quiz", ResponseBody: "QUESTION 1: ...",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini-2.0-flash", Model: "gemini-2.0-flash", Purpose: "flashcards",
		LatencyMs: 50, Success: false, ErrorMessage: "LLM provider unavailable",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "flashcards", events[0].Purpose, "newest first")
	assert.Greater(t, events[0].Sequence, events[1].Sequence)
	assert.False(t, events[0].Success)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "QUESTION 1: ...", filtered[0].ResponseBody)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	got, err := repo.GetLLMEvent(ctx, filtered[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 400, got.OutputTokens)
	assert.Equal(t, "[user]\nCreate a short quiz", got.RequestBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Model: "gemini-2.0-flash", Purpose: "quiz", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Model: "gemini-2.0-flash", Purpose: "quiz", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Model: "gpt-4o-mini", Purpose: "lesson_plan", InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: true},
		{Model: "gpt-4o-mini", Purpose: "lesson_plan", LatencyMs: 10, Success: false},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, d))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "lesson_plan", Calls: 2, InputTokens: 5, OutputTokens: 5, AvgLatencyMs: 30}, byPurpose[0])
	assert.Equal(t, PurposeUsage{Purpose: "quiz", Calls: 2, InputTokens: 40, OutputTokens: 60, AvgLatencyMs: 200}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, ModelUsage{Model: "gemini-2.0-flash", Calls: 2, InputTokens: 40, OutputTokens: 60}, byModel[0])
	assert.Equal(t, ModelUsage{Model: "gpt-4o-mini", Calls: 1, InputTokens: 5, OutputTokens: 5}, byModel[1])
}

func TestGenerationEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendGeneration(ctx, GenerationEventData{
		RequestID: "a", AgeGroup: "6-8", ContentType: "quiz", Topic: "Solar System", Items: 5, LatencyMs: 1200,
	}))
	require.NoError(t, repo.AppendGeneration(ctx, GenerationEventData{
		RequestID: "b", AgeGroup: "9-12", ContentType: "tutorial", Topic: "Coding", Failed: true, ErrorKind: "transport",
	}))

	events, err := repo.QueryGenerations(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].RequestID)
	assert.True(t, events[0].Failed)
	assert.Equal(t, "transport", events[0].ErrorKind)
	assert.Equal(t, 5, events[1].Items)

	future, err := repo.QueryGenerations(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m", Success: true}))
	require.NoError(t, repo.AppendGeneration(ctx, GenerationEventData{RequestID: "x", AgeGroup: "6-8", ContentType: "quiz", Topic: "t"}))

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	gens, err := repo.QueryGenerations(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Less(t, llmEvents[0].Sequence, gens[0].Sequence)
}
