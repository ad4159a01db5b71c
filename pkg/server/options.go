package server

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/store"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// DefaultCookieName names the cookie that carries the session id.
const DefaultCookieName = "formwizard_session"

// Messages shown above the form after a submit attempt.
const (
	SubmittedMessage    = "Form submitted successfully!"
	SubmitFailedMessage = "Submission failed, please try again."
)

// Option configures a Handler.
type Option func(*Handler)

// WithStore persists answers of every session in s, keyed by session id.
func WithStore(s store.Store) Option {
	return func(h *Handler) {
		h.store = s
	}
}

// WithRegistry replaces the default html/json renderer registry.
func WithRegistry(registry *render.Registry, candidates ...string) Option {
	return func(h *Handler) {
		if registry == nil {
			return
		}
		h.registry = registry
		h.candidates = append([]string(nil), candidates...)
	}
}

// WithSubmitHandler receives the values of every successful submit.
func WithSubmitHandler(fn wizard.SubmitHandler) Option {
	return func(h *Handler) {
		h.onSubmit = fn
	}
}

// WithLogger sets the logger used by the handler and its engines.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCookieName overrides DefaultCookieName.
func WithCookieName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.cookieName = name
		}
	}
}

// WithActionPath sets the form action, for handlers mounted under a prefix.
func WithActionPath(path string) Option {
	return func(h *Handler) {
		h.actionPath = path
	}
}

// WithCSRFToken adds a hidden token field to every rendered form and rejects
// POSTs whose token does not match with 403. The function receives the
// session id.
func WithCSRFToken(name string, token func(sessionID string) string) Option {
	return func(h *Handler) {
		if name == "" || token == nil {
			return
		}
		h.csrfName = name
		h.csrfToken = token
	}
}

// WithSessionTTL evicts sessions idle for longer than ttl. Zero disables
// idle eviction. Default: DefaultSessionTTL.
func WithSessionTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		if ttl >= 0 {
			h.sessionTTL = ttl
		}
	}
}

// WithMaxSessions caps the number of cached sessions, evicting the least
// recently seen first. Zero removes the cap. Default: DefaultMaxSessions.
func WithMaxSessions(n int) Option {
	return func(h *Handler) {
		if n >= 0 {
			h.maxSessions = n
		}
	}
}

// WithClock replaces time.Now for session bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}
