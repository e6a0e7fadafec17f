// Package querycache holds the results of read procedures keyed by procedure
// path and input, and lets writers mark them stale after a mutation.
//
// A Cache is shared by every consumer in a process and is injected where it
// is needed. Invalidation never edits a cached value; it marks matching
// entries stale so the next Fetch reloads them.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status describes the freshness of a cache entry.
type Status string

const (
	StatusMissing Status = "missing"
	StatusFresh   Status = "fresh"
	StatusStale   Status = "stale"
)

// State is a snapshot of one entry.
type State struct {
	Status    Status
	UpdatedAt time.Time
}

// EventKind names a cache change.
type EventKind string

const (
	EventFetched     EventKind = "fetched"
	EventInvalidated EventKind = "invalidated"
)

// Event is delivered to subscribers after the cache changes.
type Event struct {
	Kind EventKind
	Key  Key
}

// Fetcher loads the value of a query.
type Fetcher func(ctx context.Context) (any, error)

type entry struct {
	key     Key
	value   any
	updated time.Time
	stale   bool
}

// Cache is a concurrency-safe query cache.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	epoch   uint64
	subs    map[int]func(Event)
	nextSub int
	group   singleflight.Group
	logger  *slog.Logger
}

// New creates an empty cache.
func New(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		subs:    make(map[int]func(Event)),
		logger:  logger.With("system", "querycache"),
	}
}

// Fetch returns the fresh cached value for key or loads it with fetch.
// Concurrent fetches of the same key share a single load. The shared load
// runs detached from any one caller's cancellation; each caller stops
// waiting when its own ctx is done. A value loaded while an invalidation ran
// is stored as stale.
func (c *Cache) Fetch(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	id := key.String()

	c.mu.Lock()
	if e, ok := c.entries[id]; ok && !e.stale {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	load := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (any, error) {
		c.mu.Lock()
		start := c.epoch
		c.mu.Unlock()

		value, err := fetch(load)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[id] = &entry{
			key:     key,
			value:   value,
			updated: time.Now(),
			stale:   c.epoch != start,
		}
		c.mu.Unlock()

		c.logger.Debug("query fetched", "key", id)
		c.publish(Event{Kind: EventFetched, Key: key})
		return value, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// FetchAs is Fetch for a typed fetcher.
func FetchAs[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached value for %s is %T, not %T", key.String(), v, zero)
	}
	return typed, nil
}

// Set stores value for key as fresh.
func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	c.entries[key.String()] = &entry{key: key, value: value, updated: time.Now()}
	c.mu.Unlock()

	c.publish(Event{Kind: EventFetched, Key: key})
}

// Get returns the cached value for key whether fresh or stale.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks every entry matched by key stale and returns how many
// entries were affected. Subscribers receive one event per affected entry.
func (c *Cache) Invalidate(key Key) int {
	c.mu.Lock()
	c.epoch++

	var matched []Key
	for _, e := range c.entries {
		if key.Matches(e.key) {
			e.stale = true
			matched = append(matched, e.key)
		}
	}
	c.mu.Unlock()

	c.logger.Debug("queries invalidated", "key", key.String(), "count", len(matched))

	for _, k := range matched {
		c.publish(Event{Kind: EventInvalidated, Key: k})
	}
	return len(matched)
}

// State reports the freshness of key.
func (c *Cache) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return State{Status: StatusMissing}
	}

	status := StatusFresh
	if e.stale {
		status = StatusStale
	}
	return State{Status: status, UpdatedAt: e.updated}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Subscribe registers fn for cache events. Events are delivered synchronously
// on the goroutine that changed the cache, without the cache lock held. The
// returned func removes the subscription.
func (c *Cache) Subscribe(fn func(Event)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Cache) publish(ev Event) {
	c.mu.Lock()
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}
