package agents_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
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

type memory struct {
	mu     sync.Mutex
	agents map[uuid.UUID]agents.Agent
	lists  int
}

func newMemory() *memory {
	return &memory{agents: make(map[uuid.UUID]agents.Agent)}
}

func (m *memory) Create(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.agents {
		if a.Name == cmd.Name {
			return nil, agents.ErrDuplicate
		}
	}
	now := time.Now()
	a := agents.Agent{ID: uuid.New(), Name: cmd.Name, Instructions: cmd.Instructions, CreatedAt: now, UpdatedAt: now}
	m.agents[a.ID] = a
	return &a, nil
}

func (m *memory) Update(ctx context.Context, id uuid.UUID, cmd agents.UpdateCommand) (*agents.Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.agents[id]
	if !ok {
		return nil, agents.ErrNotFound
	}
	a.Name, a.Instructions, a.UpdatedAt = cmd.Name, cmd.Instructions, time.Now()
	m.agents[id] = a
	return &a, nil
}

func (m *memory) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.agents[id]; !ok {
		return agents.ErrNotFound
	}
	delete(m.agents, id)
	return nil
}

func (m *memory) Find(ctx context.Context, id uuid.UUID) (*agents.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.agents[id]
	if !ok {
		return nil, agents.ErrNotFound
	}
	return &a, nil
}

func (m *memory) List(ctx context.Context, page pagination.PageRequest, filters agents.Filters) (*pagination.PageResult[agents.Agent], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++

	page.Normalize(pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})

	var data []agents.Agent
	for _, a := range m.agents {
		if filters.Name != nil && !strings.Contains(a.Name, *filters.Name) {
			continue
		}
		data = append(data, a)
	}
	slices.SortFunc(data, func(a, b agents.Agent) int { return strings.Compare(a.Name, b.Name) })

	result := pagination.NewPageResult(data, len(data), page.Page, page.PageSize)
	return &result, nil
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", agents.ErrNotFound, http.StatusNotFound},
		{"duplicate", agents.ErrDuplicate, http.StatusConflict},
		{"invalid", fmt.Errorf("%w: name", agents.ErrInvalid), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, agents.MapHTTPStatus(tt.err))
		})
	}
}

func TestCreateCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     agents.CreateCommand
		wantErr string
	}{
		{"valid", agents.CreateCommand{Name: "Tutor", Instructions: "Teach"}, ""},
		{"missing name", agents.CreateCommand{Instructions: "Teach"}, agents.MsgNameRequired},
		{"missing instructions", agents.CreateCommand{Name: "Tutor"}, agents.MsgInstructionsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, agents.ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidator_FieldMessages(t *testing.T) {
	errs := agents.Validator().Validate(agents.CreateCommand{})

	assert.Equal(t, agents.MsgNameRequired, errs["name"])
	assert.Equal(t, agents.MsgInstructionsRequired, errs["instructions"])
}

func TestKeys(t *testing.T) {
	id := uuid.New()

	assert.True(t, agents.ListKey().Matches(agents.ListKeyFor(agents.ListInput{})))
	name := "tutor"
	assert.True(t, agents.ListKey().Matches(agents.ListKeyFor(agents.ListInput{Filters: agents.Filters{Name: &name}})))
	assert.False(t, agents.ListKey().Matches(agents.OneKey(id)))

	assert.True(t, agents.OneKey(id).Matches(agents.OneKey(id)))
	assert.False(t, agents.OneKey(id).Matches(agents.OneKey(uuid.New())))
}

func newClient(t *testing.T, cache *querycache.Cache) (*agents.Client, *memory) {
	t.Helper()
	mem := newMemory()
	router := rpc.NewRouter(map[string]rpc.Procedures{agents.Namespace: agents.Procedures(mem)})
	return agents.NewClient(rpc.NewLocal(router), cache), mem
}

func TestClient_CreateAndUpdate(t *testing.T) {
	client, _ := newClient(t, nil)
	ctx := context.Background()

	created, err := client.Create(ctx, agents.CreateCommand{Name: "Tutor", Instructions: "Teach math"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	updated, err := client.Update(ctx, created.ID, agents.UpdateCommand{Name: "Tutor", Instructions: "Teach physics"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Teach physics", updated.Instructions)

	got, err := client.GetOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teach physics", got.Instructions)

	require.NoError(t, client.Remove(ctx, created.ID))

	_, err = client.GetOne(ctx, created.ID)
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusNotFound, rpcErr.Status)
	assert.Equal(t, "agent not found", rpcErr.Message)
}

func TestClient_Errors(t *testing.T) {
	client, _ := newClient(t, nil)
	ctx := context.Background()

	_, err := client.Create(ctx, agents.CreateCommand{Name: "Tutor", Instructions: "Teach"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		call   func() error
		status int
	}{
		{
			name: "duplicate",
			call: func() error {
				_, err := client.Create(ctx, agents.CreateCommand{Name: "Tutor", Instructions: "Again"})
				return err
			},
			status: http.StatusConflict,
		},
		{
			name: "invalid",
			call: func() error {
				_, err := client.Create(ctx, agents.CreateCommand{Name: "", Instructions: "x"})
				return err
			},
			status: http.StatusBadRequest,
		},
		{
			name: "update missing id",
			call: func() error {
				_, err := client.Update(ctx, uuid.Nil, agents.UpdateCommand{Name: "a", Instructions: "b"})
				return err
			},
			status: http.StatusBadRequest,
		},
		{
			name: "update unknown",
			call: func() error {
				_, err := client.Update(ctx, uuid.New(), agents.UpdateCommand{Name: "a", Instructions: "b"})
				return err
			},
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rpcErr *rpc.Error
			require.ErrorAs(t, tt.call(), &rpcErr)
			assert.Equal(t, tt.status, rpcErr.Status)
		})
	}
}

func TestClient_GetManyUsesCache(t *testing.T) {
	cache := querycache.New(logging.Discard())
	client, mem := newClient(t, cache)
	ctx := context.Background()

	_, err := client.Create(ctx, agents.CreateCommand{Name: "Tutor", Instructions: "Teach"})
	require.NoError(t, err)

	first, err := client.GetMany(ctx, agents.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Total)

	_, err = client.GetMany(ctx, agents.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, mem.lists)

	_, err = client.Create(ctx, agents.CreateCommand{Name: "Critic", Instructions: "Review"})
	require.NoError(t, err)
	cache.Invalidate(agents.ListKey())

	second, err := client.GetMany(ctx, agents.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Total)
	assert.Equal(t, 2, mem.lists)
	assert.Equal(t, "Critic", second.Data[0].Name)
}

func TestClient_RemoveInvalidates(t *testing.T) {
	cache := querycache.New(logging.Discard())
	client, mem := newClient(t, cache)
	ctx := context.Background()

	created, err := client.Create(ctx, agents.CreateCommand{Name: "Tutor", Instructions: "Teach"})
	require.NoError(t, err)

	_, err = client.GetOne(ctx, created.ID)
	require.NoError(t, err)
	list, err := client.GetMany(ctx, agents.ListInput{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)

	meetingList := querycache.NewKey(meetings.PathGetMany, meetings.ListInput{})
	meetingOne := meetings.OneKey(uuid.New())
	cache.Set(meetingList, "meetings")
	cache.Set(meetingOne, "meeting")

	require.NoError(t, client.Remove(ctx, created.ID))

	assert.Equal(t, querycache.StatusStale, cache.State(agents.OneKey(created.ID)).Status)
	assert.Equal(t, querycache.StatusStale, cache.State(agents.ListKeyFor(agents.ListInput{})).Status)
	assert.Equal(t, querycache.StatusStale, cache.State(meetingList).Status)
	assert.Equal(t, querycache.StatusStale, cache.State(meetingOne).Status)

	_, err = client.GetOne(ctx, created.ID)
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusNotFound, rpcErr.Status)

	list, err = client.GetMany(ctx, agents.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.Equal(t, 2, mem.lists)
}

func TestClient_RemoveFailureKeepsCache(t *testing.T) {
	cache := querycache.New(logging.Discard())
	client, _ := newClient(t, cache)
	ctx := context.Background()

	_, err := client.GetMany(ctx, agents.ListInput{})
	require.NoError(t, err)

	require.Error(t, client.Remove(ctx, uuid.New()))
	assert.Equal(t, querycache.StatusFresh, cache.State(agents.ListKeyFor(agents.ListInput{})).Status)
}
