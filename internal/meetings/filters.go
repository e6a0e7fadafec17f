package meetings

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/query"
)

// Filters contains optional filtering criteria for meeting queries.
type Filters struct {
	AgentID *uuid.UUID `json:"agent_id,omitempty"`
	Status  *Status    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.AgentID != nil {
		b.WhereEquals("AgentID", *f.AgentID)
	}
	if f.Status != nil {
		b.WhereEquals("Status", string(*f.Status))
	}
	return b
}
