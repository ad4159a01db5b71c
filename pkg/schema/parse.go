package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/model"
)

var (
	errLoaderMissing = errors.New("schema: loader is required")
	// ErrInvalidDocument is returned when a payload is neither JSON nor YAML
	// describing a wizard schema.
	ErrInvalidDocument = errors.New("schema: invalid JSON or YAML document")
)

// Parse decodes a schema document. JSON is attempted first and YAML second;
// the decoded schema is then normalised and structurally validated.
func Parse(doc Document) (model.Schema, error) {
	raw, err := decode(doc.Raw())
	if err != nil {
		return model.Schema{}, fmt.Errorf("schema: parse %s: %w", doc.Location(), err)
	}

	built, err := model.NewBuilder().Build(raw)
	if err != nil {
		return model.Schema{}, fmt.Errorf("schema: %s: %w", doc.Location(), err)
	}
	return built, nil
}

// ParseBytes is a convenience wrapper for in-memory payloads.
func ParseBytes(name string, data []byte) (model.Schema, error) {
	doc, err := NewDocument(SourceFromFS(name), data)
	if err != nil {
		return model.Schema{}, err
	}
	return Parse(doc)
}

func decode(data []byte) (model.Schema, error) {
	var out model.Schema
	if len(bytes.TrimSpace(data)) == 0 {
		return out, ErrInvalidDocument
	}

	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}

	out = model.Schema{}
	if err := yaml.Unmarshal(data, &out); err == nil && len(out.Steps) > 0 {
		return out, nil
	}

	return model.Schema{}, ErrInvalidDocument
}
