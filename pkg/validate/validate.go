// Package validate checks values against a JSON Schema object definition and
// reports failures per property so callers can render field-level messages.
package validate

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// FieldErrors maps a property name to its validation message.
type FieldErrors map[string]string

// Error joins every field message in property order.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, fe[k])
	}
	return strings.Join(parts, "; ")
}

// Validator validates object values property by property.
type Validator struct {
	schema     *jsonschema.Schema
	properties map[string]*jsonschema.Resolved
	order      []string
	required   []string
	messages   map[string]string
}

// New resolves every property schema of an object schema. messages supplies
// the user-facing text for a failing property; properties without a message
// report the schema error text.
func New(schema *jsonschema.Schema, messages map[string]string) (*Validator, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema required")
	}
	if schema.Type != "object" {
		return nil, fmt.Errorf("schema type must be object, got %q", schema.Type)
	}

	v := &Validator{
		schema:     schema,
		properties: make(map[string]*jsonschema.Resolved, len(schema.Properties)),
		required:   schema.Required,
		messages:   messages,
	}

	for name, prop := range schema.Properties {
		resolved, err := prop.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolve property %s: %w", name, err)
		}
		v.properties[name] = resolved
		v.order = append(v.order, name)
	}
	sort.Strings(v.order)

	return v, nil
}

// Schema returns the object schema the validator was built from.
func (v *Validator) Schema() *jsonschema.Schema {
	return v.schema
}

// Validate converts value to its JSON object form and checks each property.
// It returns nil when value is valid.
func (v *Validator) Validate(value any) FieldErrors {
	data, err := json.Marshal(value)
	if err != nil {
		return FieldErrors{"": err.Error()}
	}
	return v.ValidateJSON(data)
}

// ValidateJSON checks a raw JSON object.
func (v *Validator) ValidateJSON(data []byte) FieldErrors {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return FieldErrors{"": fmt.Sprintf("value must be a JSON object: %v", err)}
	}

	errs := FieldErrors{}
	for _, name := range v.order {
		field, present := obj[name]
		if !present {
			if slices.Contains(v.required, name) {
				errs[name] = v.message(name, "value is required")
			}
			continue
		}

		if err := v.properties[name].Validate(field); err != nil {
			errs[name] = v.message(name, err.Error())
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (v *Validator) message(name, fallback string) string {
	if msg, ok := v.messages[name]; ok {
		return msg
	}
	return fallback
}

// MinLength returns a pointer for use in schema length constraints.
func MinLength(n int) *int {
	return &n
}
