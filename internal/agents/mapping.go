package agents

import (
	"github.com/JaimeStill/agent-meet/pkg/query"
	"github.com/JaimeStill/agent-meet/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("instructions", "Instructions").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

func scanAgent(s repository.Scanner) (Agent, error) {
	var a Agent
	err := s.Scan(&a.ID, &a.Name, &a.Instructions, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
