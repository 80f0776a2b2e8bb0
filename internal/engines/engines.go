// Package engines wires the per-type execution engines behind the agent
// query dispatch.
package engines

import (
	"context"
	"errors"
	"fmt"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/agents"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/ml"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/rag"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/search"
)

// Dispatcher routes queries to the engine matching the agent's type.
// It implements the agent query executor and document processor.
type Dispatcher struct {
	rag    *rag.Engine
	search *search.Engine
	ml     *ml.Engine
}

// NewDispatcher creates a dispatcher over the three engines.
func NewDispatcher(ragEngine *rag.Engine, searchEngine *search.Engine, mlEngine *ml.Engine) *Dispatcher {
	return &Dispatcher{
		rag:    ragEngine,
		search: searchEngine,
		ml:     mlEngine,
	}
}

// Execute runs the query on the engine for the agent's type. Rag and
// search agents consume the query text; ml agents consume parameters.
func (d *Dispatcher) Execute(ctx context.Context, agent *agents.Agent, req agents.QueryRequest) (agents.QueryResult, error) {
	switch agent.Type {
	case agents.TypeRAG:
		if req.Query == "" {
			return nil, agents.ErrEmptyQuery
		}
		return d.rag.Query(ctx, agent, req.Query)

	case agents.TypeSearch:
		if req.Query == "" {
			return nil, agents.ErrEmptyQuery
		}
		return d.search.Query(ctx, agent, req.Query)

	case agents.TypeML:
		result, err := d.ml.Query(ctx, agent, req.Parameters)
		if err != nil {
			if isParameterError(err) {
				return nil, fmt.Errorf("%w: %s", agents.ErrInvalidParams, err)
			}
			return nil, err
		}
		return result, nil
	}

	return nil, fmt.Errorf("%w: %q", agents.ErrInvalidType, agent.Type)
}

// Process ingests an uploaded document through the rag engine.
func (d *Dispatcher) Process(ctx context.Context, agent *agents.Agent, upload agents.Upload) (int, error) {
	return d.rag.Process(ctx, agent, upload)
}

func isParameterError(err error) bool {
	return errors.Is(err, ml.ErrNoData) ||
		errors.Is(err, ml.ErrNoTarget) ||
		errors.Is(err, ml.ErrInvalidData) ||
		errors.Is(err, ml.ErrUnknownModel)
}
