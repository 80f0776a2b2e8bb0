package users

import "github.com/rsrinivasan18/agentic-ai-platform/pkg/query"

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("username", "Username").
	Project("email", "Email").
	Project("full_name", "FullName").
	Project("disabled", "Disabled").
	Project("hashed_password", "HashedPassword").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Username"}
