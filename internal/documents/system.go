package documents

import (
	"context"

	"github.com/google/uuid"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/pagination"
)

// System defines the document record operations. Create is invoked by
// the agent upload flow; the HTTP surface exposes read and delete only.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	SetChunkCount(ctx context.Context, id uuid.UUID, count int) error
	Delete(ctx context.Context, id uuid.UUID) error
}
