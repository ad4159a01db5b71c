package render

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"sync"

	"github.com/elnormous/contenttype"
)

// ErrNotAcceptable is returned by Negotiate when no candidate satisfies the
// request's Accept header.
var ErrNotAcceptable = errors.New("render: no acceptable renderer")

// Registry stores renderers by name and picks one per request from the Accept
// header.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}

// Negotiate picks the renderer whose content type best matches the Accept
// header of r. Candidates are tried in the order given, or in List order when
// none are named; the first candidate wins when the request has no Accept
// header.
func (r *Registry) Negotiate(req *http.Request, candidates ...string) (Renderer, error) {
	if len(candidates) == 0 {
		candidates = r.List()
	}

	renderers := make([]Renderer, 0, len(candidates))
	available := make([]contenttype.MediaType, 0, len(candidates))
	for _, name := range candidates {
		renderer, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		renderers = append(renderers, renderer)
		available = append(available, contenttype.NewMediaType(baseMediaType(renderer.ContentType())))
	}
	if len(renderers) == 0 {
		return nil, ErrNotAcceptable
	}

	accepted, _, err := contenttype.GetAcceptableMediaType(req, available)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAcceptable, err)
	}
	for i, mt := range available {
		if mt.Type == accepted.Type && mt.Subtype == accepted.Subtype {
			return renderers[i], nil
		}
	}
	return nil, ErrNotAcceptable
}

// baseMediaType drops parameters such as charset so a bare Accept entry
// matches.
func baseMediaType(contentType string) string {
	base, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return base
}
