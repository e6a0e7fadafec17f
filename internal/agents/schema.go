package agents

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/JaimeStill/agent-meet/pkg/validate"
)

// Field messages reported for an invalid draft.
const (
	MsgNameRequired         = "Name is required"
	MsgInstructionsRequired = "Instructions are required"
)

var insertValidator = mustValidator()

// InsertSchema is the JSON Schema every create and update payload must satisfy.
func InsertSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {
				Type:        "string",
				Description: "Display name of the agent",
				MinLength:   validate.MinLength(1),
			},
			"instructions": {
				Type:        "string",
				Description: "Instructions the agent follows during meetings",
				MinLength:   validate.MinLength(1),
			},
		},
		Required: []string{"name", "instructions"},
	}
}

// Validator returns the validator for InsertSchema.
func Validator() *validate.Validator {
	return insertValidator
}

// Validate checks the command against InsertSchema.
func (c CreateCommand) Validate() error {
	return check(c)
}

// Validate checks the command against InsertSchema.
func (c UpdateCommand) Validate() error {
	return check(c)
}

func check(v any) error {
	if errs := insertValidator.Validate(v); errs != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, errs.Error())
	}
	return nil
}

func mustValidator() *validate.Validator {
	v, err := validate.New(InsertSchema(), map[string]string{
		"name":         MsgNameRequired,
		"instructions": MsgInstructionsRequired,
	})
	if err != nil {
		panic(fmt.Sprintf("agents: build insert validator: %v", err))
	}
	return v
}
