package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Session cache defaults. An evicted session is rebuilt from the store on its
// next request.
const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 10000
)

type session struct {
	mu       sync.Mutex
	id       string
	engine   *wizard.Engine
	flash    string
	lastSeen time.Time
}

// takeFlash returns and clears the pending message. Callers hold s.mu.
func (s *session) takeFlash() string {
	msg := s.flash
	s.flash = ""
	return msg
}

// sessionFor returns the session named by the request cookie, creating one
// (and setting the cookie) when the cookie is missing or malformed.
func (h *Handler) sessionFor(w http.ResponseWriter, r *http.Request) *session {
	id := ""
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		if parsed, err := uuid.Parse(cookie.Value); err == nil {
			id = parsed.String()
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     h.cookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	now := h.now()
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		s.lastSeen = now
		return s
	}
	h.evictLocked(now)
	s := &session{id: id, engine: h.newEngine(r.Context(), id), lastSeen: now}
	h.sessions[id] = s
	return s
}

// evictLocked drops sessions idle for longer than the TTL, then the least
// recently seen ones until there is room for one more. Callers hold h.mu.
func (h *Handler) evictLocked(now time.Time) {
	if h.sessionTTL > 0 {
		for id, s := range h.sessions {
			if now.Sub(s.lastSeen) > h.sessionTTL {
				delete(h.sessions, id)
			}
		}
	}
	for h.maxSessions > 0 && len(h.sessions) >= h.maxSessions {
		var (
			oldestID string
			oldest   time.Time
		)
		for id, s := range h.sessions {
			if oldestID == "" || s.lastSeen.Before(oldest) {
				oldestID, oldest = id, s.lastSeen
			}
		}
		delete(h.sessions, oldestID)
	}
}

func (h *Handler) newEngine(ctx context.Context, id string) *wizard.Engine {
	opts := []wizard.Option{
		wizard.WithSessionKey(id),
		wizard.WithLogger(h.logger),
		wizard.WithSubmitValidation(wizard.SubmitValidateAll),
	}
	if h.store != nil {
		opts = append(opts, wizard.WithStore(h.store))
	}
	if h.onSubmit != nil {
		opts = append(opts, wizard.WithSubmitHandler(h.onSubmit))
	}
	engine := wizard.New(h.schema, opts...)
	engine.Restore(ctx)
	return engine
}

// Sessions reports how many sessions are cached.
func (h *Handler) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}
