package agents

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/query"
)

// Filters contains optional filtering criteria for agent queries.
type Filters struct {
	Type    *AgentType
	OwnerID *uuid.UUID
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var agentType *AgentType
	if t := AgentType(values.Get("type")); t.Valid() {
		agentType = &t
	}

	var ownerID *uuid.UUID
	if id, err := uuid.Parse(values.Get("owner_id")); err == nil {
		ownerID = &id
	}

	return Filters{
		Type:    agentType,
		OwnerID: ownerID,
	}
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Type != nil {
		b.WhereEquals("Type", string(*f.Type))
	}
	if f.OwnerID != nil {
		b.WhereEquals("OwnerID", *f.OwnerID)
	}
	return b
}
