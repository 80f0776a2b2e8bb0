package documents

import "github.com/rsrinivasan18/agentic-ai-platform/pkg/query"

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("agent_id", "AgentID").
	Project("name", "Name").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("chunk_count", "ChunkCount").
	Project("storage_key", "StorageKey").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}
