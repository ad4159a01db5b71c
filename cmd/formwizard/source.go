package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

const fetchTimeout = 15 * time.Second

// schemaFlags selects the document a command works on.
type schemaFlags struct {
	schema    string
	openapi   string
	operation string
}

func (f *schemaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.schema, "schema", "embedded:", `wizard schema: file path, URL or "embedded:<name>"; OpenAPI documents are detected`)
	cmd.Flags().StringVar(&f.openapi, "openapi", "", "OpenAPI document to build the wizard from")
	cmd.Flags().StringVar(&f.operation, "operation", "", "operationId to use from the OpenAPI document")
	cmd.MarkFlagsMutuallyExclusive("schema", "openapi")
}

func (f *schemaFlags) load(ctx context.Context) (formwizard.Schema, error) {
	options := []schema.LoaderOption{
		schema.WithFileSystem(schema.EmbeddedFS()),
		schema.WithHTTPFallback(fetchTimeout),
	}
	if f.openapi != "" {
		return formwizard.LoadOpenAPISchema(ctx, f.openapi, f.operation, options...)
	}
	src, err := schema.ParseLocation(f.schema)
	if err != nil {
		return formwizard.Schema{}, err
	}
	doc, err := formwizard.NewLoader(options...).Load(ctx, src)
	if err != nil {
		return formwizard.Schema{}, err
	}
	if doc.IsOpenAPI() {
		return formwizard.FromOpenAPI(ctx, doc.Raw(), f.operation)
	}
	if f.operation != "" {
		return formwizard.Schema{}, errors.New("--operation requires an OpenAPI document")
	}
	return schema.Parse(doc)
}
