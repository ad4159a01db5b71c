package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// ValuesJSONSchema describes the payload handed to submit handlers: one
// property per field, strings for every type except checkboxes, enums for
// choice fields, and the required list derived from the schema. Optional
// choice fields also accept the empty string. Required
// checkboxes are pinned to true since an unchecked box fails validation.
func ValuesJSONSchema(s model.Schema) *jsonschema.Schema {
	out := &jsonschema.Schema{
		Version:              jsonschema.Version,
		ID:                   jsonschema.ID(s.ID),
		Type:                 "object",
		Title:                s.Title,
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}

	for _, field := range s.Fields() {
		out.Properties.Set(field.Name, fieldSchema(field))
		if field.Required {
			out.Required = append(out.Required, field.Name)
		}
	}
	return out
}

// MarshalValuesJSONSchema renders ValuesJSONSchema as indented JSON.
func MarshalValuesJSONSchema(s model.Schema) ([]byte, error) {
	return json.MarshalIndent(ValuesJSONSchema(s), "", "  ")
}

func fieldSchema(field model.FieldSpec) *jsonschema.Schema {
	prop := &jsonschema.Schema{
		Title:       field.Label,
		Description: field.Help,
	}

	switch field.Type {
	case model.FieldTypeCheckbox:
		prop.Type = "boolean"
		if field.Required {
			prop.Const = true
		}
	case model.FieldTypeDropdown, model.FieldTypeRadio:
		prop.Type = "string"
		for _, opt := range field.Options {
			prop.Enum = append(prop.Enum, opt.Value)
		}
		// An optional choice left unselected is posted as "".
		if !field.Required {
			prop.Enum = append(prop.Enum, "")
		}
	case model.FieldTypeEmail:
		prop.Type = "string"
		prop.Format = "email"
	case model.FieldTypeDate:
		prop.Type = "string"
		prop.Format = "date"
	case model.FieldTypeNumber:
		prop.Type = "string"
		prop.Pattern = `^-?[0-9]+(\.[0-9]+)?$`
	case model.FieldTypeText:
		prop.Type = "string"
	}

	if field.Required && prop.Type == "string" {
		minLen := uint64(1)
		prop.MinLength = &minLen
	}
	return prop
}
