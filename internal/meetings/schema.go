package meetings

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/validate"
)

var (
	insertValidator = mustValidator(InsertSchema())
	updateValidator = mustValidator(UpdateSchema())
)

// InsertSchema is the JSON Schema for meetings.create payloads.
func InsertSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":     {Type: "string", MinLength: validate.MinLength(1)},
			"agent_id": {Type: "string", MinLength: validate.MinLength(1)},
		},
		Required: []string{"name", "agent_id"},
	}
}

// UpdateSchema extends InsertSchema with the status field.
func UpdateSchema() *jsonschema.Schema {
	s := InsertSchema()

	enum := make([]any, len(Statuses))
	for i, st := range Statuses {
		enum[i] = string(st)
	}
	s.Properties["status"] = &jsonschema.Schema{Type: "string", Enum: enum}
	s.Required = append(s.Required, "status")
	return s
}

// Validate checks the command against InsertSchema.
func (c CreateCommand) Validate() error {
	if err := check(insertValidator, c); err != nil {
		return err
	}
	return requireAgent(c.AgentID)
}

// Validate checks the command against UpdateSchema.
func (c UpdateCommand) Validate() error {
	if err := check(updateValidator, c); err != nil {
		return err
	}
	if err := requireAgent(c.AgentID); err != nil {
		return err
	}
	if c.StartedAt != nil && c.EndedAt != nil && c.EndedAt.Before(*c.StartedAt) {
		return fmt.Errorf("%w: ended_at precedes started_at", ErrInvalid)
	}
	return nil
}

func requireAgent(id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: agent_id: Agent is required", ErrInvalid)
	}
	return nil
}

func check(v *validate.Validator, value any) error {
	if errs := v.Validate(value); errs != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, errs.Error())
	}
	return nil
}

func mustValidator(s *jsonschema.Schema) *validate.Validator {
	v, err := validate.New(s, map[string]string{
		"name":     "Name is required",
		"agent_id": "Agent is required",
	})
	if err != nil {
		panic(fmt.Sprintf("meetings: build validator: %v", err))
	}
	return v
}
