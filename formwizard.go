// Package formwizard is the entry point of the module: it wires the schema
// loader, the OpenAPI adapter and the wizard engine behind a few helpers.
package formwizard

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/model"
	pkgopenapi "github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Schema aliases the wizard schema for callers that only import the root.
type Schema = model.Schema

// Engine aliases the wizard engine.
type Engine = wizard.Engine

// NewEngine constructs an engine for s.
func NewEngine(s Schema, options ...wizard.Option) *Engine {
	return wizard.New(s, options...)
}

// LoadSchema resolves location (file path, URL or "embedded:<name>") and
// parses the wizard schema it points to.
func LoadSchema(ctx context.Context, location string, options ...schema.LoaderOption) (Schema, error) {
	src, err := schema.ParseLocation(location)
	if err != nil {
		return Schema{}, err
	}
	options = append([]schema.LoaderOption{schema.WithFileSystem(schema.EmbeddedFS())}, options...)
	return schema.Load(ctx, NewLoader(options...), src)
}

// LoadOpenAPISchema resolves location as an OpenAPI document and builds the
// wizard schema for operationID.
func LoadOpenAPISchema(ctx context.Context, location, operationID string, options ...schema.LoaderOption) (Schema, error) {
	src, err := schema.ParseLocation(location)
	if err != nil {
		return Schema{}, err
	}
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return Schema{}, err
	}
	return fromOpenAPIDocument(ctx, doc, operationID)
}

// FromOpenAPI builds the wizard schema for operationID from a raw OpenAPI 3
// document. An empty operationID is accepted when the document declares a
// single operation.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (Schema, error) {
	doc, err := schema.NewDocument(schema.SourceFromFS("openapi"), raw)
	if err != nil {
		return Schema{}, err
	}
	return fromOpenAPIDocument(ctx, doc, operationID)
}

func fromOpenAPIDocument(ctx context.Context, doc schema.Document, operationID string) (Schema, error) {
	ops, err := NewOpenAPIParser().Operations(ctx, doc)
	if err != nil {
		return Schema{}, fmt.Errorf("formwizard: %s: %w", doc.Location(), err)
	}
	op, err := pkgopenapi.SelectOperation(ops, operationID)
	if err != nil {
		return Schema{}, err
	}
	return pkgopenapi.FormSchema(op)
}
