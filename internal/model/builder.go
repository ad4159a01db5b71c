package model

import (
	"strconv"
	"strings"
)

// Labeler derives a display label from a field name.
type Labeler func(name string) string

// Builder normalises raw schemas into the canonical form consumed by the
// engine: trimmed names, derived labels, lowered type tags, copied slices.
type Builder struct {
	labeler Labeler
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLabeler overrides the label derivation used for fields without a label.
func WithLabeler(labeler Labeler) BuilderOption {
	return func(b *Builder) {
		if labeler != nil {
			b.labeler = labeler
		}
	}
}

// NewBuilder constructs a Builder using LabelFromName unless overridden.
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{labeler: LabelFromName}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build returns a normalised deep copy of raw after structural validation.
func (b *Builder) Build(raw Schema) (Schema, error) {
	out := Schema{
		ID:    strings.TrimSpace(raw.ID),
		Title: strings.TrimSpace(raw.Title),
		Steps: make([]Step, 0, len(raw.Steps)),
	}

	for idx, step := range raw.Steps {
		normalised := Step{
			Title:       strings.TrimSpace(step.Title),
			Description: strings.TrimSpace(step.Description),
			Fields:      make([]FieldSpec, 0, len(step.Fields)),
		}
		if normalised.Title == "" {
			normalised.Title = defaultStepTitle(idx)
		}
		for _, field := range step.Fields {
			normalised.Fields = append(normalised.Fields, b.buildField(field))
		}
		out.Steps = append(out.Steps, normalised)
	}

	if err := Validate(out); err != nil {
		return Schema{}, err
	}
	return out, nil
}

func (b *Builder) buildField(field FieldSpec) FieldSpec {
	out := field
	out.Name = strings.TrimSpace(field.Name)
	out.Label = strings.TrimSpace(field.Label)
	if out.Label == "" {
		out.Label = b.labeler(out.Name)
	}
	if parsed, err := ParseFieldType(string(field.Type)); err == nil {
		out.Type = parsed
	}
	if len(field.Options) > 0 {
		out.Options = make([]Option, len(field.Options))
		for i, opt := range field.Options {
			label := strings.TrimSpace(opt.Label)
			if label == "" {
				label = opt.Value
			}
			out.Options[i] = Option{Label: label, Value: opt.Value}
		}
	}
	return out
}

func defaultStepTitle(idx int) string {
	return "Step " + strconv.Itoa(idx+1)
}
