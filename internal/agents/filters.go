package agents

import (
	"github.com/JaimeStill/agent-meet/pkg/query"
)

// Filters contains optional filtering criteria for agent queries.
type Filters struct {
	Name *string `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Name", f.Name)
}
