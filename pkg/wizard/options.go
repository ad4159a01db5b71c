package wizard

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-formwizard/pkg/store"
)

// DefaultSessionKey is the store key used when WithSessionKey is not given.
const DefaultSessionKey = "formData"

// SubmitHandler receives a copy of the collected values on a valid submit.
// Returning an error aborts the submit and leaves the session untouched.
type SubmitHandler func(ctx context.Context, values Values) error

// SubmitValidation selects which steps Submit validates.
type SubmitValidation int

const (
	// SubmitValidateLast validates only the last step.
	SubmitValidateLast SubmitValidation = iota
	// SubmitValidateAll validates every step and moves back to the first
	// failing one.
	SubmitValidateAll
)

// Option configures an Engine.
type Option func(*Engine)

// WithStore attaches the blob store used by Restore, Save, autosave and the
// clear performed by Submit. Without a store the session lives in memory only.
func WithStore(s store.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithSessionKey overrides the key under which values are persisted.
func WithSessionKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.sessionKey = key
		}
	}
}

// WithSubmitHandler installs the callback invoked on a valid submit.
func WithSubmitHandler(handler SubmitHandler) Option {
	return func(e *Engine) {
		e.onSubmit = handler
	}
}

// WithListener subscribes l to engine events. May be given more than once.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		if l != nil {
			e.listeners = append(e.listeners, l)
		}
	}
}

// WithLogger sets the logger used for store failures and lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAutosave toggles persisting values after every SetField. Enabled by
// default.
func WithAutosave(enabled bool) Option {
	return func(e *Engine) {
		e.autosave = enabled
	}
}

// WithSubmitValidation selects the validation scope of Submit.
func WithSubmitValidation(mode SubmitValidation) Option {
	return func(e *Engine) {
		e.submitValidation = mode
	}
}
