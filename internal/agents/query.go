package agents

import (
	"context"

	"github.com/google/uuid"
)

// QueryRequest is the body of a query submission. Rag and search agents
// consume Query; ml agents consume Parameters.
type QueryRequest struct {
	Query      string         `json:"query"`
	Parameters map[string]any `json:"parameters"`
}

// QueryResult is the closed set of per-type query response variants.
type QueryResult interface {
	ResultType() AgentType
}

// SourceDocument is a retrieved chunk backing a rag answer.
type SourceDocument struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
	Score    float64        `json:"score"`
}

// RAGResult is the response variant for rag agents.
type RAGResult struct {
	Query           string           `json:"query"`
	Answer          string           `json:"answer"`
	SourceDocuments []SourceDocument `json:"source_documents"`
}

func (RAGResult) ResultType() AgentType { return TypeRAG }

// SearchItem is a single web search hit.
type SearchItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchResult is the response variant for search agents.
type SearchResult struct {
	Query         string       `json:"query"`
	Answer        string       `json:"answer"`
	SearchResults []SearchItem `json:"search_results"`
}

func (SearchResult) ResultType() AgentType { return TypeSearch }

// MLResult is the response variant for ml agents.
type MLResult struct {
	ModelType    string             `json:"model_type"`
	TaskType     string             `json:"task_type"`
	TargetColumn string             `json:"target_column"`
	DataShape    [2]int             `json:"data_shape"`
	Metrics      map[string]float64 `json:"metrics"`
	Explanation  string             `json:"explanation"`
}

func (MLResult) ResultType() AgentType { return TypeML }

// Executor runs a query against an agent, dispatching on its type.
type Executor interface {
	Execute(ctx context.Context, agent *Agent, req QueryRequest) (QueryResult, error)
}

// Upload carries an uploaded file into a rag agent's collection.
// Collection overrides the agent's configured collection_name when set.
// DocumentID links stored chunks to the document record so deleting the
// record removes its chunks.
type Upload struct {
	DocumentID  uuid.UUID
	Filename    string
	ContentType string
	Collection  string
	Data        []byte
}

// DocumentProcessor splits, embeds, and stores an uploaded document.
// It returns the number of chunks produced.
type DocumentProcessor interface {
	Process(ctx context.Context, agent *Agent, upload Upload) (int, error)
}

// UploadResult is the response body of a document upload.
type UploadResult struct {
	Message       string `json:"message"`
	DocumentCount int    `json:"document_count"`
}
