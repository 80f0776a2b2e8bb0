package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// EnvLLMBaseURL overrides the OpenAI-compatible API base URL.
	EnvLLMBaseURL = "LLM_BASE_URL"

	// EnvLLMAPIKey overrides the LLM API key.
	EnvLLMAPIKey = "OPENAI_API_KEY"

	// EnvLLMModel overrides the default chat model.
	EnvLLMModel = "DEFAULT_LLM_MODEL"

	// EnvLLMEmbeddingModel overrides the default embedding model.
	EnvLLMEmbeddingModel = "DEFAULT_EMBEDDING_MODEL"

	// EnvLLMTimeout overrides the LLM request timeout.
	EnvLLMTimeout = "LLM_TIMEOUT"

	// EnvSearchProvider overrides the web search provider.
	EnvSearchProvider = "SEARCH_PROVIDER"

	// EnvSearchAPIKey overrides the web search API key.
	EnvSearchAPIKey = "SERPAPI_API_KEY"

	// EnvSearchNumResults overrides the default search result count.
	EnvSearchNumResults = "SEARCH_NUM_RESULTS"

	// EnvRAGChunkSize overrides the document chunk size.
	EnvRAGChunkSize = "RAG_CHUNK_SIZE"

	// EnvRAGTopK overrides the retrieval depth.
	EnvRAGTopK = "RAG_TOP_K"
)

// EnginesConfig groups execution engine configuration.
type EnginesConfig struct {
	LLM    LLMConfig    `toml:"llm"`
	Search SearchConfig `toml:"search"`
	RAG    RAGConfig    `toml:"rag"`
}

// Finalize applies defaults, loads environment overrides, and validates engine configuration.
func (c *EnginesConfig) Finalize() error {
	if err := c.LLM.Finalize(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Search.Finalize(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := c.RAG.Finalize(); err != nil {
		return fmt.Errorf("rag: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *EnginesConfig) Merge(overlay *EnginesConfig) {
	c.LLM.Merge(&overlay.LLM)
	c.Search.Merge(&overlay.Search)
	c.RAG.Merge(&overlay.RAG)
}

// LLMConfig configures access to an OpenAI-compatible chat and
// embeddings API.
type LLMConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	Timeout        string `toml:"timeout"`
}

// TimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *LLMConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the LLM configuration.
func (c *LLMConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *LLMConfig) Merge(overlay *LLMConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.EmbeddingModel != "" {
		c.EmbeddingModel = overlay.EmbeddingModel
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *LLMConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = "text-embedding-3-small"
	}
	if c.Timeout == "" {
		c.Timeout = "120s"
	}
}

func (c *LLMConfig) loadEnv() {
	if v := os.Getenv(EnvLLMBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvLLMEmbeddingModel); v != "" {
		c.EmbeddingModel = v
	}
	if v := os.Getenv(EnvLLMTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *LLMConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

// SearchConfig configures the web search engine.
type SearchConfig struct {
	Provider   string `toml:"provider"`
	APIKey     string `toml:"api_key"`
	NumResults int    `toml:"num_results"`
}

// Finalize applies defaults, loads environment overrides, and validates the search configuration.
func (c *SearchConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *SearchConfig) Merge(overlay *SearchConfig) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.NumResults != 0 {
		c.NumResults = overlay.NumResults
	}
}

func (c *SearchConfig) loadDefaults() {
	if c.Provider == "" {
		c.Provider = "serpapi"
	}
	if c.NumResults == 0 {
		c.NumResults = 5
	}
}

func (c *SearchConfig) loadEnv() {
	if v := os.Getenv(EnvSearchProvider); v != "" {
		c.Provider = v
	}
	if v := os.Getenv(EnvSearchAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvSearchNumResults); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.NumResults = n
		}
	}
}

func (c *SearchConfig) validate() error {
	switch c.Provider {
	case "serpapi", "brave":
	default:
		return fmt.Errorf("invalid provider: %s (must be serpapi or brave)", c.Provider)
	}
	if c.NumResults < 1 {
		return fmt.Errorf("num_results must be positive")
	}
	return nil
}

// RAGConfig configures document chunking and retrieval.
type RAGConfig struct {
	ChunkSize int `toml:"chunk_size"`
	TopK      int `toml:"top_k"`
}

// Finalize applies defaults, loads environment overrides, and validates the RAG configuration.
func (c *RAGConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *RAGConfig) Merge(overlay *RAGConfig) {
	if overlay.ChunkSize != 0 {
		c.ChunkSize = overlay.ChunkSize
	}
	if overlay.TopK != 0 {
		c.TopK = overlay.TopK
	}
}

func (c *RAGConfig) loadDefaults() {
	if c.ChunkSize == 0 {
		c.ChunkSize = 1000
	}
	if c.TopK == 0 {
		c.TopK = 4
	}
}

func (c *RAGConfig) loadEnv() {
	if v := os.Getenv(EnvRAGChunkSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = n
		}
	}
	if v := os.Getenv(EnvRAGTopK); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TopK = n
		}
	}
}

func (c *RAGConfig) validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be positive")
	}
	return nil
}
