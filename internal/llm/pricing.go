package llm

import (
	"regexp"
	"strings"
)

// ModelCost is list pricing in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one call's usage.
func (c ModelCost) Cost(u Usage) float64 {
	return (float64(u.InputTokens)*c.InputPerMTok + float64(u.OutputTokens)*c.OutputPerMTok) / 1e6
}

// versionSuffix matches the snapshot tags providers append to a model
// family: "-001", "-20251001", "-2024-07-18" and "-latest".
var versionSuffix = regexp.MustCompile(`-(\d{3}|\d{8}|\d{4}-\d{2}-\d{2}|latest)$`)

// LookupCost finds pricing for a model ID as reported by a provider.
// OpenRouter vendor prefixes and snapshot suffixes are ignored, so
// "google/gemini-2.0-flash-001" prices as "gemini-2.0-flash".
func LookupCost(modelID string) (ModelCost, bool) {
	id := strings.ToLower(strings.TrimSpace(modelID))
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	if c, ok := modelCosts[id]; ok {
		return c, true
	}
	c, ok := modelCosts[versionSuffix.ReplaceAllString(id, "")]
	return c, ok
}

// EstimateCost prices usage for modelID. ok is false for unknown models.
func EstimateCost(modelID string, u Usage) (usd float64, ok bool) {
	c, ok := LookupCost(modelID)
	if !ok {
		return 0, false
	}
	return c.Cost(u), true
}

// List prices as published by each vendor, checked 2026-02-15.
var modelCosts = map[string]ModelCost{
	"gemini-1.5-flash":      {0.075, 0.3},
	"gemini-1.5-pro":        {1.25, 5},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	"claude-3-5-haiku":  {0.8, 4},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-1":   {15, 75},
}
