package meetings

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/pagination"
	"github.com/JaimeStill/agent-meet/pkg/querycache"
	"github.com/JaimeStill/agent-meet/pkg/rpc"
)

// Namespace is the RPC namespace the meetings procedures are mounted under.
const Namespace = "meetings"

// Procedure paths.
const (
	PathCreate  = Namespace + ".create"
	PathUpdate  = Namespace + ".update"
	PathGetMany = Namespace + ".getMany"
	PathGetOne  = Namespace + ".getOne"
	PathRemove  = Namespace + ".remove"
)

// ListKey addresses every cached meetings.getMany query.
func ListKey() querycache.Key {
	return querycache.NewKey(PathGetMany, map[string]any{})
}

// OneKey addresses the cached meetings.getOne query for id.
func OneKey(id uuid.UUID) querycache.Key {
	return querycache.NewKey(PathGetOne, IDInput{ID: id})
}

// Client calls the meetings procedures. Mutations invalidate the affected
// cached reads.
type Client struct {
	caller rpc.Caller
	cache  *querycache.Cache
}

// NewClient creates a meetings client. cache may be nil.
func NewClient(caller rpc.Caller, cache *querycache.Cache) *Client {
	return &Client{caller: caller, cache: cache}
}

func (c *Client) Create(ctx context.Context, cmd CreateCommand) (*Meeting, error) {
	m, err := rpc.CallMutation[*Meeting](ctx, c.caller, PathCreate, cmd)
	if err != nil {
		return nil, err
	}
	c.invalidate(ListKey())
	return m, nil
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Meeting, error) {
	m, err := rpc.CallMutation[*Meeting](ctx, c.caller, PathUpdate, UpdateInput{ID: id, UpdateCommand: cmd})
	if err != nil {
		return nil, err
	}
	c.invalidate(ListKey(), OneKey(id))
	return m, nil
}

func (c *Client) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := rpc.CallMutation[IDInput](ctx, c.caller, PathRemove, IDInput{ID: id}); err != nil {
		return err
	}
	c.invalidate(ListKey(), OneKey(id))
	return nil
}

func (c *Client) GetMany(ctx context.Context, in ListInput) (*pagination.PageResult[Meeting], error) {
	fetch := func(ctx context.Context) (*pagination.PageResult[Meeting], error) {
		return rpc.CallQuery[*pagination.PageResult[Meeting]](ctx, c.caller, PathGetMany, in)
	}
	if c.cache == nil {
		return fetch(ctx)
	}
	return querycache.FetchAs(ctx, c.cache, querycache.NewKey(PathGetMany, in), fetch)
}

func (c *Client) GetOne(ctx context.Context, id uuid.UUID) (*Meeting, error) {
	fetch := func(ctx context.Context) (*Meeting, error) {
		return rpc.CallQuery[*Meeting](ctx, c.caller, PathGetOne, IDInput{ID: id})
	}
	if c.cache == nil {
		return fetch(ctx)
	}
	return querycache.FetchAs(ctx, c.cache, OneKey(id), fetch)
}

func (c *Client) invalidate(keys ...querycache.Key) {
	if c.cache == nil {
		return
	}
	for _, k := range keys {
		c.cache.Invalidate(k)
	}
}
