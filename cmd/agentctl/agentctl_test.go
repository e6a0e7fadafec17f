package main

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/agent-meet/internal/agents"
	"github.com/JaimeStill/agent-meet/internal/meetings"
	"github.com/JaimeStill/agent-meet/pkg/logging"
	"github.com/JaimeStill/agent-meet/pkg/pagination"
	"github.com/JaimeStill/agent-meet/pkg/querycache"
	"github.com/JaimeStill/agent-meet/pkg/rpc"
)

func newTestApp(t *testing.T, procs rpc.Procedures) *app {
	t.Helper()
	return newRouterApp(t, map[string]rpc.Procedures{agents.Namespace: procs})
}

func newRouterApp(t *testing.T, table map[string]rpc.Procedures) *app {
	t.Helper()
	cache := querycache.New(logging.Discard())
	caller := rpc.NewLocal(rpc.NewRouter(table))
	return &app{
		logger:   logging.Discard(),
		cache:    cache,
		agents:   agents.NewClient(caller, cache),
		meetings: meetings.NewClient(caller, cache),
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run([]string{"destroy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destroy")
}

func TestRun_NoCommand(t *testing.T) {
	assert.NoError(t, run(nil))
	assert.NoError(t, run([]string{"--help"}))
}

func TestSubmitFlags_Create(t *testing.T) {
	var got agents.CreateCommand
	a := newTestApp(t, rpc.Procedures{
		"create": rpc.Mutation(func(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
			got = cmd
			return &agents.Agent{ID: uuid.New(), Name: cmd.Name, Instructions: cmd.Instructions}, nil
		}),
	})

	err := a.submitFlags(context.Background(), formFlags{name: "Scribe", instructions: "Take notes."}, nil)
	require.NoError(t, err)
	assert.Equal(t, agents.CreateCommand{Name: "Scribe", Instructions: "Take notes."}, got)
}

func TestSubmitFlags_EditKeepsUnsetFields(t *testing.T) {
	existing := &agents.Agent{ID: uuid.New(), Name: "Scribe", Instructions: "Take notes."}

	var got agents.UpdateInput
	a := newTestApp(t, rpc.Procedures{
		"update": rpc.Mutation(func(ctx context.Context, in agents.UpdateInput) (*agents.Agent, error) {
			got = in
			return &agents.Agent{ID: in.ID, Name: in.Name, Instructions: in.Instructions}, nil
		}),
	})

	err := a.submitFlags(context.Background(), formFlags{name: "Minutes"}, existing)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, "Minutes", got.Name)
	assert.Equal(t, "Take notes.", got.Instructions)
}

func TestSubmitFlags_Invalid(t *testing.T) {
	a := newTestApp(t, rpc.Procedures{
		"create": rpc.Mutation(func(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
			t.Fatal("create called for an invalid draft")
			return nil, nil
		}),
	})

	err := a.submitFlags(context.Background(), formFlags{name: "Scribe"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Instructions are required")
}

func TestSubmitFlags_ServerMessage(t *testing.T) {
	a := newTestApp(t, rpc.Procedures{
		"create": rpc.Mutation(func(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
			return nil, rpc.NewError(http.StatusConflict, "agent name already exists")
		}),
	})

	err := a.submitFlags(context.Background(), formFlags{name: "Scribe", instructions: "Take notes."}, nil)
	require.Error(t, err)
	assert.Equal(t, "agent name already exists", err.Error())
}

func TestRenderAgents(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	page := pagination.NewPageResult([]agents.Agent{
		{ID: uuid.New(), Name: "Scribe", Instructions: "Take notes.", UpdatedAt: now},
		{ID: uuid.New(), Name: "Facilitator", Instructions: strings.Repeat("keep time ", 20), UpdatedAt: now},
	}, 2, 1, 20)

	out := renderAgents(&page)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Scribe")
	assert.Contains(t, out, "Facilitator")
	assert.Contains(t, out, "page 1 of 1, 2 agents")
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"short", "Take notes.", 20, "Take notes."},
		{"collapses whitespace", "Take\n  notes.", 20, "Take notes."},
		{"truncates", "abcdefghij", 5, "abcd…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.in, tt.width))
		})
	}
}

func TestAgentNames_ResolvesOncePerAgent(t *testing.T) {
	scribe := agents.Agent{ID: uuid.New(), Name: "Scribe"}
	missing := uuid.New()

	var lookups int
	a := newRouterApp(t, map[string]rpc.Procedures{
		agents.Namespace: {
			"getOne": rpc.Query(func(ctx context.Context, in agents.IDInput) (*agents.Agent, error) {
				lookups++
				if in.ID == scribe.ID {
					return &scribe, nil
				}
				return nil, rpc.NewError(http.StatusNotFound, "agent not found")
			}),
		},
	})

	names := a.agentNames(context.Background(), []meetings.Meeting{
		{Name: "Standup", AgentID: scribe.ID},
		{Name: "Retro", AgentID: scribe.ID},
		{Name: "Orphan", AgentID: missing},
	})

	assert.Equal(t, map[uuid.UUID]string{scribe.ID: "Scribe"}, names)
	assert.Equal(t, 2, lookups)
}

func TestMeetingsClient_ListFilters(t *testing.T) {
	agentID := uuid.New()

	var got meetings.ListInput
	a := newRouterApp(t, map[string]rpc.Procedures{
		meetings.Namespace: {
			"getMany": rpc.Query(func(ctx context.Context, in meetings.ListInput) (*pagination.PageResult[meetings.Meeting], error) {
				got = in
				page := pagination.NewPageResult([]meetings.Meeting{
					{ID: uuid.New(), Name: "Standup", AgentID: agentID, Status: meetings.StatusActive},
				}, 1, 1, 20)
				return &page, nil
			}),
		},
	})

	status := meetings.StatusActive
	page, err := a.meetings.GetMany(context.Background(), meetings.ListInput{
		Filters: meetings.Filters{AgentID: &agentID, Status: &status},
	})
	require.NoError(t, err)
	require.NotNil(t, got.AgentID)
	assert.Equal(t, agentID, *got.AgentID)
	require.NotNil(t, got.Status)
	assert.Equal(t, meetings.StatusActive, *got.Status)

	out := renderMeetings(page, map[uuid.UUID]string{agentID: "Scribe"})
	assert.Contains(t, out, "Standup")
	assert.Contains(t, out, "Scribe")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "page 1 of 1, 1 meetings")
}

func TestRunMeetings_RejectsBadFilters(t *testing.T) {
	a := newRouterApp(t, map[string]rpc.Procedures{})

	err := runMeetings(a, []string{"--status", "paused"})
	require.Error(t, err)
	assert.ErrorIs(t, err, meetings.ErrInvalid)

	err = runMeetings(a, []string{"--agent", "not-a-uuid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-uuid")
}
