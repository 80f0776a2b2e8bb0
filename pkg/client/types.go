package client

import (
	"time"

	"github.com/google/uuid"
)

// AgentType identifies which engine an agent dispatches to.
type AgentType string

const (
	TypeRAG    AgentType = "rag"
	TypeSearch AgentType = "search"
	TypeML     AgentType = "ml"
)

// User is a platform account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Password string  `json:"password"`
}

// Token is the response of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Agent is a configured agent.
type Agent struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Type        AgentType      `json:"type"`
	Config      map[string]any `json:"config"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AgentRequest is the payload for agent create and update.
type AgentRequest struct {
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Type        AgentType      `json:"type,omitempty"`
	Config      map[string]any `json:"config"`
}

// Page is a paginated listing.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// QueryRequest is the body of a query submission.
type QueryRequest struct {
	Query      string         `json:"query"`
	Parameters map[string]any `json:"parameters"`
}

// SourceDocument is a retrieved chunk backing a rag answer.
type SourceDocument struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
	Score    float64        `json:"score"`
}

// RAGResult is the query response variant for rag agents.
type RAGResult struct {
	Query           string           `json:"query"`
	Answer          string           `json:"answer"`
	SourceDocuments []SourceDocument `json:"source_documents"`
}

// SearchItem is a single web search hit.
type SearchItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchResult is the query response variant for search agents.
type SearchResult struct {
	Query         string       `json:"query"`
	Answer        string       `json:"answer"`
	SearchResults []SearchItem `json:"search_results"`
}

// MLResult is the query response variant for ml agents.
type MLResult struct {
	ModelType    string             `json:"model_type"`
	TaskType     string             `json:"task_type"`
	TargetColumn string             `json:"target_column"`
	DataShape    [2]int             `json:"data_shape"`
	Metrics      map[string]float64 `json:"metrics"`
	Explanation  string             `json:"explanation"`
}

// QueryResponse is a tagged union over the per-type result variants.
// Exactly one variant matching Type is populated.
type QueryResponse struct {
	Type   AgentType
	RAG    *RAGResult
	Search *SearchResult
	ML     *MLResult
}

// UploadResult is the response of a document upload.
type UploadResult struct {
	Message       string `json:"message"`
	DocumentCount int    `json:"document_count"`
}
