package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/agents"
)

const serpapiEndpoint = "https://serpapi.com/search.json"

type serpapiProvider struct {
	apiKey string
	engine string
	client *http.Client
}

// NewSerpAPIProvider creates a provider backed by serpapi.com. The
// engine parameter selects the upstream search engine (default google).
func NewSerpAPIProvider(apiKey, engine string) Provider {
	if engine == "" {
		engine = "google"
	}
	return &serpapiProvider{
		apiKey: apiKey,
		engine: engine,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *serpapiProvider) Name() string { return "serpapi" }

func (p *serpapiProvider) Search(ctx context.Context, query string, count int) ([]agents.SearchItem, error) {
	q := url.Values{}
	q.Set("engine", p.engine)
	q.Set("q", query)
	q.Set("api_key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", serpapiEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi returned %d", resp.StatusCode)
	}

	var payload struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	count = clampCount(count)
	if len(payload.OrganicResults) > count {
		payload.OrganicResults = payload.OrganicResults[:count]
	}

	results := make([]agents.SearchItem, 0, len(payload.OrganicResults))
	for _, r := range payload.OrganicResults {
		results = append(results, agents.SearchItem{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}
	return results, nil
}
