package agents

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/pagination"
)

// System defines the interface for agent storage and retrieval operations.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*Agent, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, id uuid.UUID) (*Agent, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error)
}
