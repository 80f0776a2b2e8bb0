package documents

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/query"
)

// Filters contains optional filtering criteria for document queries.
type Filters struct {
	AgentID     *uuid.UUID
	ContentType *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var agentID *uuid.UUID
	if id, err := uuid.Parse(values.Get("agent_id")); err == nil {
		agentID = &id
	}

	var contentType *string
	if ct := values.Get("content_type"); ct != "" {
		contentType = &ct
	}

	return Filters{
		AgentID:     agentID,
		ContentType: contentType,
	}
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.AgentID != nil {
		b.WhereEquals("AgentID", *f.AgentID)
	}
	if f.ContentType != nil {
		b.WhereEquals("ContentType", *f.ContentType)
	}
	return b
}
