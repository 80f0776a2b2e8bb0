package users

import (
	"net/url"

	"github.com/rsrinivasan18/agentic-ai-platform/pkg/query"
)

// Filters contains optional filtering criteria for user queries.
type Filters struct {
	Username *string
	Disabled *bool
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var username *string
	if u := values.Get("username"); u != "" {
		username = &u
	}

	var disabled *bool
	switch values.Get("disabled") {
	case "true":
		t := true
		disabled = &t
	case "false":
		f := false
		disabled = &f
	}

	return Filters{
		Username: username,
		Disabled: disabled,
	}
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereContains("Username", f.Username)
	if f.Disabled != nil {
		b.WhereEquals("Disabled", *f.Disabled)
	}
	return b
}
