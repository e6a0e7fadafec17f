package agentform

import (
	"context"

	"github.com/JaimeStill/agent-meet/internal/agents"
	"github.com/JaimeStill/agent-meet/pkg/validate"
)

// Status classifies the result of a Submit.
type Status string

const (
	// StatusIgnored: a submission was already pending or the controller was closed.
	StatusIgnored Status = "ignored"
	// StatusInvalid: the draft failed validation and nothing was sent.
	StatusInvalid   Status = "invalid"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome describes what a Submit did.
type Outcome struct {
	Status Status
	Agent  *agents.Agent
	Errors validate.FieldErrors
	Err    error
}

// Submit validates the draft and, when valid, creates or updates the agent.
//
// On success the cached agent lists are invalidated, then the cached detail
// query for the record in update mode. The pending flag is cleared after
// invalidation and before OnSuccess runs. On failure the
// error message is sent to the notifier and the draft is kept for a retry.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.closed || c.pending {
		c.mu.Unlock()
		return Outcome{Status: StatusIgnored}
	}

	c.submitted = true
	draft := c.draft
	if errs := agents.Validator().Validate(draft); errs != nil {
		c.errors = errs
		c.mu.Unlock()
		return Outcome{Status: StatusInvalid, Errors: errs}
	}

	c.errors = nil
	c.pending = true
	c.mu.Unlock()

	agent, err := c.send(ctx, draft)
	if err != nil {
		closed := c.finish()

		c.logger.Warn("agent submit failed", "mode", c.mode, "error", err)
		if !closed {
			c.notifier.Notify(Notification{Severity: SeverityError, Message: err.Error()})
		}
		return Outcome{Status: StatusFailed, Err: err}
	}

	c.cache.Invalidate(agents.ListKey())
	if c.mode == ModeUpdate {
		c.cache.Invalidate(agents.OneKey(c.existingID))
	}

	closed := c.finish()

	c.logger.Info("agent submitted", "mode", c.mode, "name", draft.Name)
	if !closed && c.onSuccess != nil {
		c.onSuccess()
	}
	return Outcome{Status: StatusSucceeded, Agent: agent}
}

func (c *Controller) send(ctx context.Context, draft Draft) (*agents.Agent, error) {
	if c.mode == ModeUpdate {
		return c.client.Update(ctx, c.existingID, agents.UpdateCommand{
			Name:         draft.Name,
			Instructions: draft.Instructions,
		})
	}
	return c.client.Create(ctx, agents.CreateCommand{
		Name:         draft.Name,
		Instructions: draft.Instructions,
	})
}

// finish clears the pending flag and reports whether the controller was
// closed while the call was in flight.
func (c *Controller) finish() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false
	return c.closed
}
