package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errSchemaNoSteps  = errors.New("model: schema requires at least one step")
	errFieldNameEmpty = errors.New("model: field name is required")
)

// SchemaError pins a structural problem to a step and, when known, a field.
type SchemaError struct {
	Step  int
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("model: step %d field %q: %v", e.Step, e.Field, e.Err)
	}
	return fmt.Sprintf("model: step %d: %v", e.Step, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Validate checks the structural rules a schema must satisfy before an engine
// can drive it. It does not mutate the schema.
func Validate(schema Schema) error {
	if len(schema.Steps) == 0 {
		return errSchemaNoSteps
	}

	seen := make(map[string]int)
	for stepIdx, step := range schema.Steps {
		if len(step.Fields) == 0 {
			return &SchemaError{Step: stepIdx, Err: errors.New("step has no fields")}
		}
		for _, field := range step.Fields {
			if strings.TrimSpace(field.Name) == "" {
				return &SchemaError{Step: stepIdx, Err: errFieldNameEmpty}
			}
			if prev, dup := seen[field.Name]; dup {
				return &SchemaError{Step: stepIdx, Field: field.Name, Err: fmt.Errorf("duplicate field name (first declared in step %d)", prev)}
			}
			seen[field.Name] = stepIdx

			if err := validateField(field); err != nil {
				return &SchemaError{Step: stepIdx, Field: field.Name, Err: err}
			}
		}
	}
	return nil
}

func validateField(field FieldSpec) error {
	if !field.Type.Valid() {
		return fmt.Errorf("unknown field type %q", field.Type)
	}
	if !field.Type.IsChoice() {
		if len(field.Options) > 0 {
			return fmt.Errorf("%s fields do not take options", field.Type)
		}
		return nil
	}
	if len(field.Options) == 0 {
		return fmt.Errorf("%s fields require at least one option", field.Type)
	}
	values := make(map[string]struct{}, len(field.Options))
	for idx, opt := range field.Options {
		if opt.Value == "" {
			return fmt.Errorf("option %d has an empty value", idx)
		}
		if _, dup := values[opt.Value]; dup {
			return fmt.Errorf("duplicate option value %q", opt.Value)
		}
		values[opt.Value] = struct{}{}
	}
	return nil
}
