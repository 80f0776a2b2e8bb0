package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/agents"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/llm"
)

// LLM is the language model surface the engine depends on.
type LLM interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// Engine executes queries for search agents.
type Engine struct {
	llm      LLM
	provider Provider
	logger   *slog.Logger
}

// NewEngine creates a search engine with the given model client and
// search provider.
func NewEngine(model LLM, provider Provider, logger *slog.Logger) *Engine {
	return &Engine{
		llm:      model,
		provider: provider,
		logger:   logger.With("engine", "search"),
	}
}

const summaryPrompt = `You are a helpful research assistant. Use the following search results to answer the user's question.
If the search results don't contain relevant information, explain what information is missing and suggest a better search query.

Search Results:
%s

User's Question: %s

Please provide a comprehensive answer based on these search results:`

// Query fetches web results for the query and summarizes them. The
// result count comes from the agent's num_results config, clamped to
// the provider limits.
func (e *Engine) Query(ctx context.Context, agent *agents.Agent, query string) (*agents.SearchResult, error) {
	if e.provider == nil {
		return nil, ErrNoProvider
	}

	count := defaultResultCount
	if n, ok := agent.ConfigInt("num_results"); ok {
		count = n
	}

	results, err := e.provider.Search(ctx, query, clampCount(count))
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", e.provider.Name(), err)
	}

	answer, err := e.llm.Chat(ctx, []llm.Message{
		{Role: "user", Content: fmt.Sprintf(summaryPrompt, formatResults(results), query)},
	})
	if err != nil {
		return nil, fmt.Errorf("summarize results: %w", err)
	}

	return &agents.SearchResult{
		Query:         query,
		Answer:        answer,
		SearchResults: results,
	}, nil
}

func formatResults(results []agents.SearchItem) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "Result %d: %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "URL: %s\n", r.Link)
		fmt.Fprintf(&b, "Snippet: %s\n\n", r.Snippet)
	}
	return b.String()
}
