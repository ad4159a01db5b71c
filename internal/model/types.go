package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType is the closed set of input kinds a wizard step can carry.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeRadio    FieldType = "radio"
)

// FieldTypes lists every variant in declaration order.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeEmail,
	FieldTypeNumber,
	FieldTypeDate,
	FieldTypeCheckbox,
	FieldTypeDropdown,
	FieldTypeRadio,
}

// ParseFieldType resolves a schema tag into a FieldType. Matching ignores case
// and surrounding whitespace; "select" is accepted as an alias for dropdown.
func ParseFieldType(raw string) (FieldType, error) {
	tag := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	if tag == "select" {
		return FieldTypeDropdown, nil
	}
	if !tag.Valid() {
		return "", fmt.Errorf("model: unknown field type %q", raw)
	}
	return tag, nil
}

// Valid reports whether t is one of the declared variants.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeNumber, FieldTypeDate,
		FieldTypeCheckbox, FieldTypeDropdown, FieldTypeRadio:
		return true
	}
	return false
}

// IsChoice reports whether the field picks from a fixed option list.
func (t FieldType) IsChoice() bool {
	return t == FieldTypeDropdown || t == FieldTypeRadio
}

// Coerce converts the raw value produced by an input control into the stored
// representation: checkboxes hold a bool, everything else a string.
func (t FieldType) Coerce(raw any) any {
	if t == FieldTypeCheckbox {
		return coerceBool(raw)
	}
	switch typed := raw.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	default:
		return fmt.Sprint(typed)
	}
}

// IsEmpty applies the emptiness rule of the variant to a stored value. Absent
// values are passed as nil.
func (t FieldType) IsEmpty(value any) bool {
	switch t {
	case FieldTypeCheckbox:
		checked, ok := value.(bool)
		return !ok || !checked
	case FieldTypeText, FieldTypeEmail, FieldTypeNumber, FieldTypeDate,
		FieldTypeDropdown, FieldTypeRadio:
		str, ok := value.(string)
		return !ok || str == ""
	}
	return value == nil
}

func coerceBool(raw any) bool {
	switch typed := raw.(type) {
	case bool:
		return typed
	case string:
		trimmed := strings.TrimSpace(typed)
		if strings.EqualFold(trimmed, "on") || strings.EqualFold(trimmed, "yes") {
			return true
		}
		parsed, err := strconv.ParseBool(trimmed)
		return err == nil && parsed
	default:
		return false
	}
}

// Option is a single {label, value} entry of a dropdown or radio field.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// FieldSpec declares one input inside a step.
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Type        FieldType `json:"type" yaml:"type"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty" yaml:"help,omitempty"`
}

// HasOption reports whether value matches one of the declared options.
func (f FieldSpec) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// OptionLabel returns the label attached to value, or value itself when the
// option is unknown.
func (f FieldSpec) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// Step groups the fields presented together on one page of the wizard.
type Step struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

// Schema is the ordered list of steps driving a wizard session. It is treated
// as immutable once loaded.
type Schema struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Field looks up a field by name across all steps.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, step := range s.Steps {
		for _, field := range step.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return FieldSpec{}, false
}

// Fields flattens the schema into declaration order.
func (s Schema) Fields() []FieldSpec {
	var out []FieldSpec
	for _, step := range s.Steps {
		out = append(out, step.Fields...)
	}
	return out
}

// LastStep returns the index of the final step.
func (s Schema) LastStep() int {
	return len(s.Steps) - 1
}
