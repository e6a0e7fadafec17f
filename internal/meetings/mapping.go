package meetings

import (
	"github.com/JaimeStill/agent-meet/pkg/query"
	"github.com/JaimeStill/agent-meet/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "meetings", "m").
	Project("id", "ID").
	Project("name", "Name").
	Project("agent_id", "AgentID").
	Project("status", "Status").
	Project("started_at", "StartedAt").
	Project("ended_at", "EndedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

const returning = "id, name, agent_id, status, started_at, ended_at, created_at, updated_at"

func scanMeeting(s repository.Scanner) (Meeting, error) {
	var m Meeting
	err := s.Scan(&m.ID, &m.Name, &m.AgentID, &m.Status, &m.StartedAt, &m.EndedAt, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}
