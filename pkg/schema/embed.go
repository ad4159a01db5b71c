package schema

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// DefaultSchemaName is the bundled two-step profile schema.
const DefaultSchemaName = "profile.yaml"

//go:embed schemas/*
var embeddedSchemas embed.FS

// EmbeddedFS returns the bundled schema documents. Callers may pass this
// filesystem to a Loader via WithFileSystem.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchemas, "schemas")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default parses the bundled profile schema.
func Default() (model.Schema, error) {
	data, err := fs.ReadFile(EmbeddedFS(), DefaultSchemaName)
	if err != nil {
		return model.Schema{}, fmt.Errorf("schema: read embedded %s: %w", DefaultSchemaName, err)
	}
	return ParseBytes(DefaultSchemaName, data)
}
