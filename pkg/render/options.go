package render

// RenderOptions describe per-request data that renderers can use without
// touching the engine.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty means the current URL.
	Action string
	// Hidden carries extra inputs (session id, CSRF token) emitted with the
	// form. Use MergeHiddenFields to build it.
	Hidden map[string]string
	// Flash is a one-off message shown above the form, for example the
	// acknowledgement after a successful submit.
	Flash string
}
