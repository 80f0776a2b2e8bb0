package agents

import "github.com/rsrinivasan18/agentic-ai-platform/pkg/query"

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("type", "Type").
	Project("config", "Config").
	Project("owner_id", "OwnerID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}
