package search_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/agents"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/llm"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/search"
)

type fakeProvider struct {
	results []agents.SearchItem
	err     error
	gotCount int
}

func (f *fakeProvider) Search(ctx context.Context, query string, count int) ([]agents.SearchItem, error) {
	f.gotCount = count
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeProvider) Name() string { return "fake" }

type fakeLLM struct {
	answer string
	prompt string
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	if len(messages) > 0 {
		f.prompt = messages[len(messages)-1].Content
	}
	return f.answer, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_Query(t *testing.T) {
	provider := &fakeProvider{
		results: []agents.SearchItem{
			{Title: "Go", Link: "https://go.dev", Snippet: "the Go programming language"},
		},
	}
	model := &fakeLLM{answer: "Go is a programming language."}
	engine := search.NewEngine(model, provider, testLogger())

	agent := &agents.Agent{ID: uuid.New(), Type: agents.TypeSearch}
	result, err := engine.Query(context.Background(), agent, "what is go")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}

	if result.Query != "what is go" {
		t.Errorf("Query = %q, want %q", result.Query, "what is go")
	}
	if result.Answer != "Go is a programming language." {
		t.Errorf("Answer = %q", result.Answer)
	}
	if len(result.SearchResults) != 1 {
		t.Fatalf("SearchResults length = %d, want 1", len(result.SearchResults))
	}

	for _, fragment := range []string{
		"Result 1: Go",
		"URL: https://go.dev",
		"Snippet: the Go programming language",
		"User's Question: what is go",
	} {
		if !strings.Contains(model.prompt, fragment) {
			t.Errorf("summary prompt missing %q", fragment)
		}
	}
}

func TestEngine_Query_ResultCountFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    string
		wantCount int
	}{
		{"no config", ``, 5},
		{"configured count", `{"num_results": 3}`, 3},
		{"zero falls back to default", `{"num_results": 0}`, 5},
		{"clamped to maximum", `{"num_results": 50}`, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			engine := search.NewEngine(&fakeLLM{}, provider, testLogger())

			agent := &agents.Agent{
				ID:     uuid.New(),
				Type:   agents.TypeSearch,
				Config: json.RawMessage(tt.config),
			}

			if _, err := engine.Query(context.Background(), agent, "q"); err != nil {
				t.Fatalf("Query() error: %v", err)
			}
			if provider.gotCount != tt.wantCount {
				t.Errorf("provider count = %d, want %d", provider.gotCount, tt.wantCount)
			}
		})
	}
}

func TestEngine_Query_NoProvider(t *testing.T) {
	engine := search.NewEngine(&fakeLLM{}, nil, testLogger())

	agent := &agents.Agent{ID: uuid.New(), Type: agents.TypeSearch}
	_, err := engine.Query(context.Background(), agent, "q")
	if !errors.Is(err, search.ErrNoProvider) {
		t.Errorf("Query() error = %v, want %v", err, search.ErrNoProvider)
	}
}

func TestEngine_Query_ProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}
	engine := search.NewEngine(&fakeLLM{}, provider, testLogger())

	agent := &agents.Agent{ID: uuid.New(), Type: agents.TypeSearch}
	_, err := engine.Query(context.Background(), agent, "q")
	if err == nil {
		t.Fatal("Query() error = nil, want provider failure")
	}
	if !strings.Contains(err.Error(), "fake search") {
		t.Errorf("error %q does not name the provider", err)
	}
}
