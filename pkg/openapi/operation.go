package openapi

import (
	"errors"
	"strings"
)

// Extension keys read from request body properties and operations.
const (
	ExtensionStep            = "x-formwizard-step"
	ExtensionStepDescription = "x-formwizard-step-description"
	ExtensionOrder           = "x-formwizard-order"
	ExtensionWidget          = "x-formwizard-widget"
	ExtensionPlaceholder     = "x-formwizard-placeholder"
)

// Operation is the subset of an OpenAPI operation needed to build a wizard.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Request     Schema
	Extensions  map[string]any
}

// Schema is a trimmed view of an OpenAPI schema object.
type Schema struct {
	Type        string
	Format      string
	Title       string
	Description string
	Enum        []any
	Required    []string
	Properties  map[string]Schema
	Extensions  map[string]any
}

// NewOperation validates the identifying fields of an operation.
func NewOperation(id, method, path string, request Schema) (Operation, error) {
	if strings.TrimSpace(id) == "" {
		return Operation{}, errors.New("openapi: operation id is required")
	}
	if strings.TrimSpace(method) == "" {
		return Operation{}, errors.New("openapi: operation method is required")
	}
	return Operation{
		ID:      id,
		Method:  strings.ToUpper(method),
		Path:    path,
		Request: request,
	}, nil
}

// IsRequired reports whether name is listed in the schema's required set.
func (s Schema) IsRequired(name string) bool {
	for _, req := range s.Required {
		if req == name {
			return true
		}
	}
	return false
}

// Extension returns the string value of an extension key.
func (s Schema) Extension(key string) string {
	value, _ := s.Extensions[key].(string)
	return strings.TrimSpace(value)
}
