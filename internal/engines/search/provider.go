// Package search implements web-search query execution: a pluggable
// search provider fetches results and the chat model summarizes them
// into an answer.
package search

import (
	"context"
	"errors"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/agents"
)

const (
	defaultResultCount = 5
	maxResultCount     = 10
)

// ErrNoProvider indicates that no search backend is configured.
var ErrNoProvider = errors.New("no search provider configured")

// Provider abstracts a web search backend.
type Provider interface {
	Search(ctx context.Context, query string, count int) ([]agents.SearchItem, error)
	Name() string
}

// clampCount bounds a requested result count to the provider limits.
func clampCount(count int) int {
	if count <= 0 {
		return defaultResultCount
	}
	if count > maxResultCount {
		return maxResultCount
	}
	return count
}
