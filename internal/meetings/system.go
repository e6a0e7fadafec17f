package meetings

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/pagination"
)

// System defines the interface for meeting storage and retrieval operations.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*Meeting, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, id uuid.UUID) (*Meeting, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Meeting], error)
}
