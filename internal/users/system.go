package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/pagination"
)

// System defines the user account operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Authenticate verifies a username or email plus password pair.
	// Returns ErrInvalidCredentials on mismatch and ErrDisabled for
	// deactivated accounts.
	Authenticate(ctx context.Context, login, password string) (*User, error)
}
