// Package jsonview renders the active wizard step as JSON for script clients.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Name is the registry identifier of the renderer.
const Name = "json"

// Renderer implements render.Renderer.
type Renderer struct {
	indent string
}

type Option func(*Renderer)

// WithIndent pretty-prints the output using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

type payload struct {
	wizard.View
	Progress [2]int            `json:"progress"`
	Action   string            `json:"action,omitempty"`
	Flash    string            `json:"flash,omitempty"`
	Hidden   map[string]string `json:"hidden,omitempty"`
}

// Render encodes view together with the request options.
func (r *Renderer) Render(ctx context.Context, view wizard.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	current, total := view.Progress()
	body := payload{
		View:     view,
		Progress: [2]int{current, total},
		Action:   options.Action,
		Flash:    options.Flash,
		Hidden:   options.Hidden,
	}

	var (
		data []byte
		err  error
	)
	if r.indent != "" {
		data, err = json.MarshalIndent(body, "", r.indent)
	} else {
		data, err = json.Marshal(body)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode view: %w", err)
	}
	return data, nil
}
