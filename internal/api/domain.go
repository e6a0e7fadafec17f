package api

import (
	"github.com/JaimeStill/agent-meet/internal/agents"
	"github.com/JaimeStill/agent-meet/internal/meetings"
	"github.com/JaimeStill/agent-meet/pkg/rpc"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Agents   agents.System
	Meetings meetings.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Agents: agents.New(
			runtime.DB,
			runtime.Logger,
			runtime.Pagination,
		),
		Meetings: meetings.New(
			runtime.DB,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}

// NewAppRouter composes the feature namespaces into the application router.
// Calls are forwarded to the owning procedure unchanged.
func NewAppRouter(domain *Domain) *rpc.Router {
	return rpc.NewRouter(map[string]rpc.Procedures{
		agents.Namespace:   agents.Procedures(domain.Agents),
		meetings.Namespace: meetings.Procedures(domain.Meetings),
	})
}
