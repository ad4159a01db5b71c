package model

import internalmodel "github.com/goliatone/go-formwizard/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeEmail    = internalmodel.FieldTypeEmail
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeCheckbox = internalmodel.FieldTypeCheckbox
	FieldTypeDropdown = internalmodel.FieldTypeDropdown
	FieldTypeRadio    = internalmodel.FieldTypeRadio
)

type Option = internalmodel.Option
type FieldSpec = internalmodel.FieldSpec
type Step = internalmodel.Step
type Schema = internalmodel.Schema
type SchemaError = internalmodel.SchemaError

// ParseFieldType resolves a schema type tag.
func ParseFieldType(raw string) (FieldType, error) {
	return internalmodel.ParseFieldType(raw)
}

// FieldTypes returns every supported field type in declaration order.
func FieldTypes() []FieldType {
	return append([]FieldType(nil), internalmodel.FieldTypes...)
}

// Validate runs the structural schema checks without normalising.
func Validate(schema Schema) error {
	return internalmodel.Validate(schema)
}
