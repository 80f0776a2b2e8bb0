package rag_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/agents"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/llm"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/rag"
)

type fakeLLM struct {
	answer     string
	prompt     string
	embedCalls int
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	f.prompt = messages[len(messages)-1].Content
	return f.answer, nil
}

func (f *fakeLLM) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.embedCalls++
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(i), 1}
	}
	return vectors, nil
}

type fakeStore struct {
	collection string
	documentID *uuid.UUID
	added      []rag.Chunk
	results    []rag.ScoredChunk
	addCalls   int
}

func (f *fakeStore) Add(ctx context.Context, collection string, documentID *uuid.UUID, chunks []rag.Chunk) error {
	f.addCalls++
	f.collection = collection
	f.documentID = documentID
	f.added = chunks
	return nil
}

func (f *fakeStore) Search(ctx context.Context, collection string, embedding []float32, k int) ([]rag.ScoredChunk, error) {
	f.collection = collection
	return f.results, nil
}

func testEngine() (*rag.Engine, *fakeLLM, *fakeStore) {
	model := &fakeLLM{answer: "answered"}
	store := &fakeStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return rag.NewEngine(model, store, logger, rag.Config{ChunkSize: 100, TopK: 2}), model, store
}

func TestEngine_Process_LinksChunksToDocument(t *testing.T) {
	engine, _, store := testEngine()
	agent := &agents.Agent{ID: uuid.New(), Type: agents.TypeRAG}
	docID := uuid.New()

	count, err := engine.Process(context.Background(), agent, agents.Upload{
		DocumentID: docID,
		Filename:   "notes.txt",
		Collection: "papers",
		Data:       []byte("first paragraph\n\nsecond paragraph"),
	})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if count == 0 {
		t.Fatal("Process() produced no chunks for text input")
	}

	if store.documentID == nil || *store.documentID != docID {
		t.Errorf("stored document id = %v, want %s", store.documentID, docID)
	}
	if store.collection != "papers" {
		t.Errorf("collection = %q, want %q", store.collection, "papers")
	}
	if len(store.added) != count {
		t.Errorf("stored chunks = %d, want %d", len(store.added), count)
	}
	for i, c := range store.added {
		if c.Metadata["source"] != "notes.txt" {
			t.Errorf("chunk %d source = %v, want %q", i, c.Metadata["source"], "notes.txt")
		}
		if len(c.Embedding) == 0 {
			t.Errorf("chunk %d has no embedding", i)
		}
	}
}

func TestEngine_Process_SkipsNonTextContent(t *testing.T) {
	engine, model, store := testEngine()
	agent := &agents.Agent{ID: uuid.New(), Type: agents.TypeRAG}

	count, err := engine.Process(context.Background(), agent, agents.Upload{
		DocumentID:  uuid.New(),
		Filename:    "scan.pdf",
		ContentType: "application/pdf",
		Data:        []byte{0x25, 0x50, 0x44, 0x46, 0xff, 0xfe, 0x00},
	})
	if err != nil {
		t.Fatalf("Process() error: %v, want nil for non-text content", err)
	}
	if count != 0 {
		t.Errorf("chunk count = %d, want 0", count)
	}
	if model.embedCalls != 0 {
		t.Errorf("embed calls = %d, want 0", model.embedCalls)
	}
	if store.addCalls != 0 {
		t.Errorf("store add calls = %d, want 0", store.addCalls)
	}
}

func TestEngine_Process_EmptyTextProducesNoChunks(t *testing.T) {
	engine, _, store := testEngine()
	agent := &agents.Agent{ID: uuid.New(), Type: agents.TypeRAG}

	count, err := engine.Process(context.Background(), agent, agents.Upload{
		DocumentID: uuid.New(),
		Filename:   "empty.txt",
		Data:       []byte("   \n\n  "),
	})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if count != 0 {
		t.Errorf("chunk count = %d, want 0", count)
	}
	if store.addCalls != 0 {
		t.Errorf("store add calls = %d, want 0", store.addCalls)
	}
}

func TestEngine_Query_AnswersFromRetrievedChunks(t *testing.T) {
	engine, model, store := testEngine()
	agent := &agents.Agent{ID: uuid.New(), Type: agents.TypeRAG}
	store.results = []rag.ScoredChunk{
		{Content: "go is a language", Score: 0.9},
		{Content: "released in 2009", Score: 0.8},
	}

	result, err := engine.Query(context.Background(), agent, "what is go")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}

	if result.Answer != "answered" {
		t.Errorf("answer = %q, want %q", result.Answer, "answered")
	}
	if len(result.SourceDocuments) != 2 {
		t.Fatalf("source documents = %d, want 2", len(result.SourceDocuments))
	}
	if result.SourceDocuments[0].Score != 0.9 {
		t.Errorf("score = %v, want 0.9", result.SourceDocuments[0].Score)
	}
	if !strings.Contains(model.prompt, "go is a language") {
		t.Error("prompt does not include retrieved context")
	}
	if !strings.Contains(model.prompt, "what is go") {
		t.Error("prompt does not include the question")
	}
}

func TestCollection(t *testing.T) {
	id := uuid.New()
	configured := &agents.Agent{ID: id, Config: json.RawMessage(`{"collection_name": "library"}`)}
	bare := &agents.Agent{ID: id}

	tests := []struct {
		name     string
		agent    *agents.Agent
		override string
		want     string
	}{
		{"override wins", configured, "papers", "papers"},
		{"config fallback", configured, "", "library"},
		{"agent id fallback", bare, "", id.String()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rag.Collection(tc.agent, tc.override); got != tc.want {
				t.Errorf("Collection() = %q, want %q", got, tc.want)
			}
		})
	}
}
