package agents

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/internal/meetings"
	"github.com/JaimeStill/agent-meet/pkg/pagination"
	"github.com/JaimeStill/agent-meet/pkg/querycache"
	"github.com/JaimeStill/agent-meet/pkg/rpc"
)

// Namespace is the RPC namespace the agents procedures are mounted under.
const Namespace = "agents"

// Procedure paths.
const (
	PathCreate  = Namespace + ".create"
	PathUpdate  = Namespace + ".update"
	PathGetMany = Namespace + ".getMany"
	PathGetOne  = Namespace + ".getOne"
	PathRemove  = Namespace + ".remove"
)

// ListKey addresses every cached agents.getMany query regardless of input.
func ListKey() querycache.Key {
	return querycache.NewKey(PathGetMany, map[string]any{})
}

// ListKeyFor addresses the cached agents.getMany query for in.
func ListKeyFor(in ListInput) querycache.Key {
	return querycache.NewKey(PathGetMany, in)
}

// OneKey addresses the cached agents.getOne query for id.
func OneKey(id uuid.UUID) querycache.Key {
	return querycache.NewKey(PathGetOne, IDInput{ID: id})
}

// Client calls the agents procedures. Reads go through the query cache when
// one is supplied. Create and Update leave invalidation to the caller; the
// agent form owns that sequence.
type Client struct {
	caller rpc.Caller
	cache  *querycache.Cache
}

// NewClient creates an agents client. cache may be nil.
func NewClient(caller rpc.Caller, cache *querycache.Cache) *Client {
	return &Client{caller: caller, cache: cache}
}

func (c *Client) Create(ctx context.Context, cmd CreateCommand) (*Agent, error) {
	return rpc.CallMutation[*Agent](ctx, c.caller, PathCreate, cmd)
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error) {
	return rpc.CallMutation[*Agent](ctx, c.caller, PathUpdate, UpdateInput{ID: id, UpdateCommand: cmd})
}

// Remove deletes the agent, then marks stale its cached detail, every cached
// agent list and every cached meeting read, since meetings cascade with
// their agent.
func (c *Client) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := rpc.CallMutation[IDInput](ctx, c.caller, PathRemove, IDInput{ID: id}); err != nil {
		return err
	}
	if c.cache == nil {
		return nil
	}

	c.cache.Invalidate(ListKey())
	c.cache.Invalidate(OneKey(id))
	c.cache.Invalidate(meetings.ListKey())
	c.cache.Invalidate(querycache.NewKey(meetings.PathGetOne, map[string]any{}))
	return nil
}

func (c *Client) GetMany(ctx context.Context, in ListInput) (*pagination.PageResult[Agent], error) {
	fetch := func(ctx context.Context) (*pagination.PageResult[Agent], error) {
		return rpc.CallQuery[*pagination.PageResult[Agent]](ctx, c.caller, PathGetMany, in)
	}
	if c.cache == nil {
		return fetch(ctx)
	}
	return querycache.FetchAs(ctx, c.cache, ListKeyFor(in), fetch)
}

func (c *Client) GetOne(ctx context.Context, id uuid.UUID) (*Agent, error) {
	fetch := func(ctx context.Context) (*Agent, error) {
		return rpc.CallQuery[*Agent](ctx, c.caller, PathGetOne, IDInput{ID: id})
	}
	if c.cache == nil {
		return fetch(ctx)
	}
	return querycache.FetchAs(ctx, c.cache, OneKey(id), fetch)
}
