package model

import (
	"github.com/goliatone/go-formwizard/internal/model"
)

// Builder normalises raw schemas and applies decorators.
type Builder interface {
	Build(raw Schema) (Schema, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler    func(string) string
	decorators []Decorator
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithDecorators appends decorators that run after normalisation. The result
// is validated again once every decorator has run.
func WithDecorators(decorators ...Decorator) BuilderOption {
	return func(opts *builderOptions) {
		for _, d := range decorators {
			if d != nil {
				opts.decorators = append(opts.decorators, d)
			}
		}
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	var internalOpts []model.BuilderOption
	if cfg.labeler != nil {
		internalOpts = append(internalOpts, model.WithLabeler(cfg.labeler))
	}

	return &builder{
		inner:      model.NewBuilder(internalOpts...),
		decorators: cfg.decorators,
	}
}

type builder struct {
	inner      *model.Builder
	decorators []Decorator
}

func (b *builder) Build(raw Schema) (Schema, error) {
	schema, err := b.inner.Build(raw)
	if err != nil {
		return Schema{}, err
	}
	if len(b.decorators) == 0 {
		return schema, nil
	}
	for _, d := range b.decorators {
		if err := d.Decorate(&schema); err != nil {
			return Schema{}, err
		}
	}
	if err := model.Validate(schema); err != nil {
		return Schema{}, err
	}
	return schema, nil
}
