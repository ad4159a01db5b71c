package render

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Renderer converts the view of the active wizard step into a byte
// representation (HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view wizard.View, options RenderOptions) ([]byte, error)
}
