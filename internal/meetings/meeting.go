// Package meetings manages meeting records. Every meeting is run by one
// agent and moves through a fixed set of statuses.
package meetings

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/pagination"
)

// Status is the lifecycle state of a meeting.
type Status string

const (
	StatusUpcoming   Status = "upcoming"
	StatusActive     Status = "active"
	StatusCompleted  Status = "completed"
	StatusProcessing Status = "processing"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every known status in lifecycle order.
var Statuses = []Status{
	StatusUpcoming,
	StatusActive,
	StatusCompleted,
	StatusProcessing,
	StatusCancelled,
}

// Validate reports whether s is a known status.
func (s Status) Validate() error {
	for _, known := range Statuses {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown status %q", ErrInvalid, s)
}

// Meeting represents a meeting record stored in the database.
type Meeting struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	AgentID   uuid.UUID  `json:"agent_id"`
	Status    Status     `json:"status"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateCommand contains the data required to create a new meeting.
type CreateCommand struct {
	Name    string    `json:"name"`
	AgentID uuid.UUID `json:"agent_id"`
}

// UpdateCommand contains the data required to update an existing meeting.
type UpdateCommand struct {
	Name      string     `json:"name"`
	AgentID   uuid.UUID  `json:"agent_id"`
	Status    Status     `json:"status"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// UpdateInput is the meetings.update payload.
type UpdateInput struct {
	ID uuid.UUID `json:"id"`
	UpdateCommand
}

// IDInput addresses a single meeting.
type IDInput struct {
	ID uuid.UUID `json:"id"`
}

// ListInput is the meetings.getMany payload.
type ListInput struct {
	pagination.PageRequest
	Filters
}
