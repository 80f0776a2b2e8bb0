// Package rag implements retrieval-augmented query execution: uploaded
// documents are chunked, embedded, and stored per-collection; queries
// retrieve the nearest chunks and prompt the chat model with them.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/agents"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/llm"
)

// LLM is the language model surface the engine depends on.
type LLM interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkStore persists and searches embedded chunks per collection.
type ChunkStore interface {
	Add(ctx context.Context, collection string, documentID *uuid.UUID, chunks []Chunk) error
	Search(ctx context.Context, collection string, embedding []float32, k int) ([]ScoredChunk, error)
}

// Config contains the retrieval tuning parameters.
type Config struct {
	ChunkSize int
	TopK      int
}

// Engine executes queries and ingestion for rag agents.
type Engine struct {
	llm    LLM
	store  ChunkStore
	logger *slog.Logger
	cfg    Config
}

// NewEngine creates a rag engine with the given model client and store.
func NewEngine(model LLM, store ChunkStore, logger *slog.Logger, cfg Config) *Engine {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 4
	}
	return &Engine{
		llm:    model,
		store:  store,
		logger: logger.With("engine", "rag"),
		cfg:    cfg,
	}
}

const answerPrompt = `You are a helpful AI assistant. Use the following context to answer the user's question.
If you don't know the answer, just say that you don't know, don't try to make up an answer.

Context:
%s

Question: %s

Answer:`

// Query retrieves the chunks nearest to the query from the agent's
// collection and asks the chat model to answer from them.
func (e *Engine) Query(ctx context.Context, agent *agents.Agent, query string) (*agents.RAGResult, error) {
	embeddings, err := e.llm.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	collection := Collection(agent, "")
	chunks, err := e.store.Search(ctx, collection, embeddings[0], e.cfg.TopK)
	if err != nil {
		return nil, err
	}

	contents := make([]string, len(chunks))
	sources := make([]agents.SourceDocument, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
		sources[i] = agents.SourceDocument{
			Content:  c.Content,
			Metadata: c.Metadata,
			Score:    c.Score,
		}
	}

	answer, err := e.llm.Chat(ctx, []llm.Message{
		{Role: "user", Content: fmt.Sprintf(answerPrompt, strings.Join(contents, "\n\n"), query)},
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &agents.RAGResult{
		Query:           query,
		Answer:          answer,
		SourceDocuments: sources,
	}, nil
}

// Process chunks and embeds an uploaded document into the agent's
// collection and returns the chunk count. Non-text payloads such as
// PDFs keep their document record but produce no chunks.
func (e *Engine) Process(ctx context.Context, agent *agents.Agent, upload agents.Upload) (int, error) {
	if !utf8.Valid(upload.Data) {
		e.logger.Info("skipping chunking for non-text document",
			"agent_id", agent.ID,
			"filename", upload.Filename,
			"content_type", upload.ContentType,
		)
		return 0, nil
	}

	texts := ChunkText(string(upload.Data), e.cfg.ChunkSize)
	if len(texts) == 0 {
		return 0, nil
	}

	embeddings, err := e.llm.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}

	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{
			Content: text,
			Metadata: map[string]any{
				"source": upload.Filename,
				"chunk":  i,
			},
			Embedding: embeddings[i],
		}
	}

	collection := Collection(agent, upload.Collection)

	var documentID *uuid.UUID
	if upload.DocumentID != uuid.Nil {
		documentID = &upload.DocumentID
	}
	if err := e.store.Add(ctx, collection, documentID, chunks); err != nil {
		return 0, err
	}

	e.logger.Info("document ingested",
		"agent_id", agent.ID,
		"collection", collection,
		"filename", upload.Filename,
		"chunks", len(chunks),
	)
	return len(chunks), nil
}

// Collection resolves the target collection name: an explicit override,
// the agent's configured collection_name, or the agent ID.
func Collection(agent *agents.Agent, override string) string {
	if override != "" {
		return override
	}
	if name := agent.ConfigValue("collection_name"); name != "" {
		return name
	}
	return agent.ID.String()
}
