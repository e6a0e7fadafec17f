// Package agentform drives the create-or-update form for a single agent.
//
// A Controller owns a draft, validates it against the agent insert schema,
// submits it through an agents client, and on success invalidates the cached
// agent queries before handing control back to the caller. Failures are
// reported through a Notifier rather than returned to the caller's context.
package agentform

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/internal/agents"
	"github.com/JaimeStill/agent-meet/pkg/logging"
	"github.com/JaimeStill/agent-meet/pkg/querycache"
	"github.com/JaimeStill/agent-meet/pkg/validate"
)

// Mode is fixed at construction: update when an initial record is supplied.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// Draft holds the editable field values.
type Draft struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// Client performs the remote create and update calls.
type Client interface {
	Create(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error)
	Update(ctx context.Context, id uuid.UUID, cmd agents.UpdateCommand) (*agents.Agent, error)
}

// Invalidator marks cached queries stale. *querycache.Cache satisfies it.
type Invalidator interface {
	Invalidate(key querycache.Key) int
}

// Options carries the optional collaborators of a Controller.
type Options struct {
	// Initial seeds the draft. A record with a non-nil ID also switches the
	// controller to update mode.
	Initial *agents.Agent
	// OnSuccess runs after a successful submit and cache invalidation.
	OnSuccess func()
	// OnCancel makes cancellation available.
	OnCancel func()
	Logger   *slog.Logger
}

type noCache struct{}

func (noCache) Invalidate(querycache.Key) int { return 0 }

// Controller is safe for concurrent use. At most one submission is in flight.
type Controller struct {
	client   Client
	cache    Invalidator
	notifier Notifier
	logger   *slog.Logger

	mode       Mode
	existingID uuid.UUID
	onSuccess  func()
	onCancel   func()

	mu        sync.Mutex
	draft     Draft
	errors    validate.FieldErrors
	submitted bool
	pending   bool
	closed    bool
}

// New creates a controller. cache may be nil when no queries are cached and
// notifier may be nil when failures need not be surfaced.
func New(client Client, cache Invalidator, notifier Notifier, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if cache == nil {
		cache = noCache{}
	}
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}

	c := &Controller{
		client:    client,
		cache:     cache,
		notifier:  notifier,
		logger:    logger.With("system", "agentform"),
		mode:      ModeCreate,
		onSuccess: opts.OnSuccess,
		onCancel:  opts.OnCancel,
	}

	if opts.Initial != nil {
		if opts.Initial.ID != uuid.Nil {
			c.mode = ModeUpdate
			c.existingID = opts.Initial.ID
		}
		c.draft = Draft{
			Name:         opts.Initial.Name,
			Instructions: opts.Initial.Instructions,
		}
	}

	return c
}

// Mode reports whether the controller creates or updates.
func (c *Controller) Mode() Mode {
	return c.mode
}

// ExistingID returns the id of the record being edited in update mode.
func (c *Controller) ExistingID() (uuid.UUID, bool) {
	return c.existingID, c.mode == ModeUpdate
}

// Draft returns the current field values.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetName replaces the name field.
func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Name = name
	c.revalidate()
}

// SetInstructions replaces the instructions field.
func (c *Controller) SetInstructions(instructions string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Instructions = instructions
	c.revalidate()
}

// Errors returns the field errors from the last validation. The map is a copy.
func (c *Controller) Errors() validate.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errors == nil {
		return nil
	}
	return maps.Clone(c.errors)
}

// IsPending reports whether a submission is in flight.
func (c *Controller) IsPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// CanSubmit reports whether Submit would start a submission.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.pending && !c.closed
}

// HasCancel reports whether a cancel callback was supplied.
func (c *Controller) HasCancel() bool {
	return c.onCancel != nil
}

// CanCancel reports whether Cancel would invoke the cancel callback.
func (c *Controller) CanCancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onCancel != nil && !c.pending && !c.closed
}

// Cancel invokes the cancel callback unless a submission is pending. It has
// no effect on the draft or the cache.
func (c *Controller) Cancel() bool {
	if !c.CanCancel() {
		return false
	}
	c.onCancel()
	return true
}

// Close detaches the controller from its owner. A submission already in
// flight completes and still invalidates the cache, but neither OnSuccess nor
// the notifier is called afterwards. Later submits are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// revalidate refreshes field errors once a submit has been attempted.
// Callers hold c.mu.
func (c *Controller) revalidate() {
	if !c.submitted {
		return
	}
	c.errors = agents.Validator().Validate(c.draft)
}
