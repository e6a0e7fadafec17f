// Package agents manages agent records: a named set of instructions that
// meetings are run against.
package agents

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/pagination"
)

// Agent represents an agent record stored in the database.
type Agent struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a new agent.
type CreateCommand struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// UpdateCommand contains the data required to update an existing agent.
type UpdateCommand struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// UpdateInput is the agents.update payload: the new values plus the target id.
type UpdateInput struct {
	ID uuid.UUID `json:"id"`
	UpdateCommand
}

// IDInput addresses a single agent.
type IDInput struct {
	ID uuid.UUID `json:"id"`
}

// ListInput is the agents.getMany payload.
type ListInput struct {
	pagination.PageRequest
	Filters
}
