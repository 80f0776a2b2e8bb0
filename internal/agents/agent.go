// Package agents provides the domain system for configured AI agents:
// registry CRUD, query dispatch by agent type, and document upload for
// retrieval-augmented agents.
package agents

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AgentType identifies the execution engine an agent dispatches to.
type AgentType string

const (
	TypeRAG    AgentType = "rag"
	TypeSearch AgentType = "search"
	TypeML     AgentType = "ml"
)

// Valid reports whether the type names a known engine.
func (t AgentType) Valid() bool {
	switch t {
	case TypeRAG, TypeSearch, TypeML:
		return true
	}
	return false
}

// Agent represents a configured agent. The config shape varies by type;
// rag agents carry collection_name, search agents may carry provider and
// num_results, ml agents may carry model and task defaults.
type Agent struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Type        AgentType       `json:"type"`
	Config      json.RawMessage `json:"config"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ConfigValue returns a string field from the agent config map.
func (a *Agent) ConfigValue(key string) string {
	if len(a.Config) == 0 {
		return ""
	}

	var cfg map[string]any
	if err := json.Unmarshal(a.Config, &cfg); err != nil {
		return ""
	}

	if v, ok := cfg[key].(string); ok {
		return v
	}
	return ""
}

// ConfigInt returns a numeric field from the agent config map.
func (a *Agent) ConfigInt(key string) (int, bool) {
	if len(a.Config) == 0 {
		return 0, false
	}

	var cfg map[string]any
	if err := json.Unmarshal(a.Config, &cfg); err != nil {
		return 0, false
	}

	if v, ok := cfg[key].(float64); ok {
		return int(v), true
	}
	return 0, false
}

// CreateCommand contains the data required to register a new agent.
type CreateCommand struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Type        AgentType       `json:"type"`
	Config      json.RawMessage `json:"config"`
}

// UpdateCommand contains the mutable agent fields. Type is accepted for
// symmetry with create payloads but must match the stored type.
type UpdateCommand struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Type        AgentType       `json:"type,omitempty"`
	Config      json.RawMessage `json:"config"`
}
