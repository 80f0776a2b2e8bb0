// Package documents provides the record-keeping system for files
// uploaded to rag agents: blob persistence, metadata, and cleanup.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document represents an uploaded file and its ingestion metadata.
type Document struct {
	ID          uuid.UUID `json:"id"`
	AgentID     uuid.UUID `json:"agent_id"`
	Name        string    `json:"name"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count,omitempty"`
	ChunkCount  int       `json:"chunk_count"`
	StorageKey  string    `json:"storage_key"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCommand contains the data required to record an uploaded file.
// The chunk count starts at zero and is set once ingestion completes.
type CreateCommand struct {
	AgentID     uuid.UUID
	Name        string
	Filename    string
	ContentType string
	SizeBytes   int64
	PageCount   *int
	Data        []byte
}
