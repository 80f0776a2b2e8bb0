package query_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rsrinivasan18/agentic-ai-platform/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("agents", "agent", "a").
		Project("id", "ID").
		Project("name", "Name").
		Project("agent_type", "Type").
		Project("created_at", "CreatedAt")
}

func TestBuilder_BuildCount(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildCount()

	want := "SELECT COUNT(*) FROM agents.agent a"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuilder_BuildCountWithConditions(t *testing.T) {
	name := "rag"
	sql, args := query.NewBuilder(testProjection()).
		WhereContains("Name", &name).
		WhereEquals("Type", "rag").
		BuildCount()

	want := "SELECT COUNT(*) FROM agents.agent a WHERE a.name ILIKE $1 AND a.agent_type = $2"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"%rag%", "rag"}) {
		t.Errorf("args = %v, want [%%rag%% rag]", args)
	}
}

func TestBuilder_BuildPage(t *testing.T) {
	sql, args := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
		WhereEquals("Type", "ml").
		BuildPage(2, 10)

	want := "SELECT a.id, a.name, a.agent_type, a.created_at FROM agents.agent a" +
		" WHERE a.agent_type = $1 ORDER BY a.created_at DESC LIMIT 10 OFFSET 10"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"ml"}) {
		t.Errorf("args = %v, want [ml]", args)
	}
}

func TestBuilder_OrderByFieldsOverridesDefault(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt"}).
		OrderByFields([]query.SortField{{Field: "Name", Descending: true}}).
		BuildPage(1, 5)

	if want := "ORDER BY a.name DESC"; !strings.Contains(sql, want) {
		t.Errorf("sql %q missing %q", sql, want)
	}
}

func TestBuilder_OrderByFieldsEmptyKeepsDefault(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection(), query.SortField{Field: "Name"}).
		OrderByFields(nil).
		BuildPage(1, 5)

	if want := "ORDER BY a.name ASC"; !strings.Contains(sql, want) {
		t.Errorf("sql %q missing %q", sql, want)
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")

	want := "SELECT a.id, a.name, a.agent_type, a.created_at FROM agents.agent a WHERE a.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"abc"}) {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestBuilder_WhereIn(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereIn("Type", []any{"rag", "search"}).
		BuildCount()

	want := "SELECT COUNT(*) FROM agents.agent a WHERE a.agent_type IN ($1, $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"rag", "search"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuilder_WhereSearch(t *testing.T) {
	search := "bot"
	sql, args := query.NewBuilder(testProjection()).
		WhereSearch(&search, "Name", "Type").
		BuildCount()

	want := "SELECT COUNT(*) FROM agents.agent a WHERE (a.name ILIKE $1 OR a.agent_type ILIKE $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"%bot%", "%bot%"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuilder_IgnoredConditions(t *testing.T) {
	var empty string
	sql, args := query.NewBuilder(testProjection()).
		WhereContains("Name", nil).
		WhereContains("Name", &empty).
		WhereEquals("Type", nil).
		WhereIn("Type", nil).
		WhereSearch(nil, "Name").
		BuildCount()

	want := "SELECT COUNT(*) FROM agents.agent a"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "name", []query.SortField{{Field: "name"}}},
		{"single descending", "-created_at", []query.SortField{{Field: "created_at", Descending: true}}},
		{
			"mixed",
			"name,-created_at",
			[]query.SortField{{Field: "name"}, {Field: "created_at", Descending: true}},
		},
		{"whitespace and blanks", " name , ,", []query.SortField{{Field: "name"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.expr)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestProjectionMap_UnknownFieldPassesThrough(t *testing.T) {
	p := testProjection()
	if got := p.Column("Unmapped"); got != "Unmapped" {
		t.Errorf("Column() = %q, want pass-through", got)
	}
}

