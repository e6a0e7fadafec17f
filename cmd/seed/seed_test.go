package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/agent-meet/internal/agents"
	"github.com/JaimeStill/agent-meet/internal/meetings"
)

func TestSeeders_RegistrationOrder(t *testing.T) {
	var names []string
	for _, s := range listSeeders() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"agents", "meetings"}, names)
}

func TestEmbeddedSeeds_Valid(t *testing.T) {
	var agentData AgentSeedData
	require.NoError(t, loadSeedData("", "agents.yaml", &agentData))
	require.NotEmpty(t, agentData.Agents)

	seeded := make(map[string]bool)
	for _, a := range agentData.Agents {
		cmd := agents.CreateCommand{Name: a.Name, Instructions: strings.TrimSpace(a.Instructions)}
		assert.NoError(t, cmd.Validate(), a.Name)
		assert.False(t, seeded[a.Name], "duplicate agent %s", a.Name)
		seeded[a.Name] = true
	}

	var meetingData MeetingSeedData
	require.NoError(t, loadSeedData("", "meetings.yaml", &meetingData))
	require.NotEmpty(t, meetingData.Meetings)

	for _, m := range meetingData.Meetings {
		assert.True(t, seeded[m.Agent], "meeting %s references unknown agent %s", m.Name, m.Agent)
		if m.Status != "" {
			assert.NoError(t, meetings.Status(m.Status).Validate(), m.Name)
		}
		if m.StartedAt != nil && m.EndedAt != nil {
			assert.True(t, m.EndedAt.After(*m.StartedAt), m.Name)
		}
	}
}

func TestLoadSeedData_ExternalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agents:\n  - name: Critic\n    instructions: Push back.\n"), 0644))

	var data AgentSeedData
	require.NoError(t, loadSeedData(path, "agents.yaml", &data))
	require.Len(t, data.Agents, 1)
	assert.Equal(t, "Critic", data.Agents[0].Name)
}

func TestLoadSeedData_Errors(t *testing.T) {
	var data AgentSeedData
	assert.Error(t, loadSeedData(filepath.Join(t.TempDir(), "missing.yaml"), "agents.yaml", &data))
	assert.Error(t, loadSeedData("", "profiles.yaml", &data))
}
