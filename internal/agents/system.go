package agents

import (
	"context"

	"github.com/google/uuid"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/pagination"
)

// System defines the agent registry operations. Ownership checks belong
// to the HTTP layer; the registry enforces type validity and type
// immutability.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error)
	Find(ctx context.Context, id uuid.UUID) (*Agent, error)
	Create(ctx context.Context, ownerID uuid.UUID, cmd CreateCommand) (*Agent, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
