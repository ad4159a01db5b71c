package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

const defaultStepTitle = "Details"

// ErrOperationNotFound is returned when the requested operation is absent.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// SelectOperation picks id from ops. An empty id is accepted when the
// document declares exactly one operation.
func SelectOperation(ops map[string]Operation, id string) (Operation, error) {
	if id == "" {
		if len(ops) == 1 {
			for _, op := range ops {
				return op, nil
			}
		}
		return Operation{}, fmt.Errorf("openapi: operation id is required when the document declares %d operations", len(ops))
	}
	op, ok := ops[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}
	return op, nil
}

// FormSchema maps the top-level scalar request body properties of op onto
// wizard fields, grouped into steps by the x-formwizard-step extension.
// Object and array properties are skipped.
func FormSchema(op Operation, options ...model.BuilderOption) (model.Schema, error) {

	type entry struct {
		name  string
		prop  Schema
		order float64
	}
	entries := make([]entry, 0, len(op.Request.Properties))
	for name, prop := range op.Request.Properties {
		if prop.Type == "object" || prop.Type == "array" {
			continue
		}
		entries = append(entries, entry{name: name, prop: prop, order: orderOf(prop)})
	}
	if len(entries) == 0 {
		return model.Schema{}, fmt.Errorf("openapi: operation %s has no scalar request body properties", op.ID)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].order != entries[j].order {
			return entries[i].order < entries[j].order
		}
		return entries[i].name < entries[j].name
	})

	fallback := strings.TrimSpace(op.Summary)
	if fallback == "" {
		fallback = defaultStepTitle
	}

	var steps []model.Step
	index := make(map[string]int)
	for _, e := range entries {
		title := e.prop.Extension(ExtensionStep)
		description := e.prop.Extension(ExtensionStepDescription)
		if title == "" {
			title = fallback
			if description == "" {
				description = op.Description
			}
		}
		pos, ok := index[title]
		if !ok {
			pos = len(steps)
			index[title] = pos
			steps = append(steps, model.Step{Title: title, Description: description})
		}
		if steps[pos].Description == "" {
			steps[pos].Description = description
		}
		steps[pos].Fields = append(steps[pos].Fields, fieldFromProperty(e.name, e.prop, op.Request.IsRequired(e.name)))
	}

	raw := model.Schema{ID: op.ID, Title: op.Summary, Steps: steps}
	built, err := model.NewBuilder(options...).Build(raw)
	if err != nil {
		return model.Schema{}, fmt.Errorf("openapi: operation %s: %w", op.ID, err)
	}
	return built, nil
}

func fieldFromProperty(name string, prop Schema, required bool) model.FieldSpec {
	field := model.FieldSpec{
		Name:        name,
		Label:       prop.Title,
		Type:        fieldType(prop),
		Required:    required,
		Placeholder: prop.Extension(ExtensionPlaceholder),
		Help:        prop.Description,
	}
	if field.Type.IsChoice() {
		for _, value := range prop.Enum {
			if value == nil || value == "" {
				continue
			}
			field.Options = append(field.Options, model.Option{Value: fmt.Sprint(value)})
		}
	}
	return field
}

func fieldType(prop Schema) model.FieldType {
	if len(prop.Enum) > 0 {
		if strings.EqualFold(prop.Extension(ExtensionWidget), string(model.FieldTypeRadio)) {
			return model.FieldTypeRadio
		}
		return model.FieldTypeDropdown
	}
	switch prop.Type {
	case "boolean":
		return model.FieldTypeCheckbox
	case "integer", "number":
		return model.FieldTypeNumber
	case "string":
		switch prop.Format {
		case "email":
			return model.FieldTypeEmail
		case "date", "date-time":
			return model.FieldTypeDate
		}
	}
	return model.FieldTypeText
}

func orderOf(prop Schema) float64 {
	switch v := prop.Extensions[ExtensionOrder].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return math.MaxFloat64
}
