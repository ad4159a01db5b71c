// Package server hosts a wizard over HTTP. Each browser session, identified
// by a cookie, owns one engine; responses are negotiated between the
// registered renderers from the Accept header.
package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/renderers/jsonview"
	"github.com/goliatone/go-formwizard/pkg/store"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Handler serves GET / and POST / for the active step plus POST /reset.
type Handler struct {
	schema     model.Schema
	store      store.Store
	registry   *render.Registry
	candidates []string
	onSubmit   wizard.SubmitHandler
	logger     *slog.Logger
	cookieName string
	actionPath string
	csrfName   string
	csrfToken  func(string) string

	sessionTTL  time.Duration
	maxSessions int
	now         func() time.Time

	mux *http.ServeMux

	mu       sync.Mutex
	sessions map[string]*session
}

// New builds a Handler for schema. Without WithRegistry the html renderer is
// the default and json is served to clients that ask for application/json.
func New(schema model.Schema, options ...Option) (*Handler, error) {
	if err := model.Validate(schema); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	h := &Handler{
		schema:      schema,
		logger:      slog.Default(),
		cookieName:  DefaultCookieName,
		sessionTTL:  DefaultSessionTTL,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	h.logger = h.logger.With("component", "server")

	if h.registry == nil {
		htmlRenderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		h.registry = render.NewRegistry()
		h.registry.MustRegister(htmlRenderer)
		h.registry.MustRegister(jsonview.New())
		h.candidates = []string{html.Name, jsonview.Name}
	}
	for _, name := range h.candidates {
		if !h.registry.Has(name) {
			return nil, fmt.Errorf("server: renderer %q is not registered", name)
		}
	}

	h.mux = http.NewServeMux()
	h.mux.HandleFunc("GET /{$}", h.handleShow)
	h.mux.HandleFunc("POST /{$}", h.handlePost)
	h.mux.HandleFunc("POST /reset", h.handleReset)
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	s := h.sessionFor(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()
	h.respond(w, r, s, http.StatusOK)
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	s := h.sessionFor(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := h.checkCSRF(r, s)
	if err == nil {
		status, err = h.apply(r, s)
	}
	if err != nil {
		code := statusOf(err)
		h.logger.Warn("post rejected", "session", s.id, "status", code, "error", err)
		if code >= http.StatusInternalServerError {
			s.flash = SubmitFailedMessage
		}
		h.respond(w, r, s, code)
		return
	}
	h.respond(w, r, s, status)
}

// apply writes the posted fields of the active step into the engine and runs
// the requested action. It returns the status of the response to render.
func (h *Handler) apply(r *http.Request, s *session) (int, error) {
	engine := s.engine
	ctx := r.Context()

	if raw := r.PostForm.Get(render.StepFieldName); raw != "" {
		step, err := strconv.Atoi(raw)
		if err != nil || step != engine.CurrentStep() {
			return 0, StatusError{Code: http.StatusConflict, Err: ErrStaleStep}
		}
	}

	fields := h.schema.Steps[engine.CurrentStep()].Fields
	for _, field := range fields {
		if !field.Type.IsChoice() {
			continue
		}
		if value := r.PostForm.Get(field.Name); value != "" && !field.HasOption(value) {
			return 0, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("%w: %s=%q", ErrUnknownOption, field.Name, value)}
		}
	}

	if !engine.State().Submitted {
		for _, field := range fields {
			_, posted := r.PostForm[field.Name]
			switch {
			case field.Type == model.FieldTypeCheckbox && !posted:
				engine.SetField(ctx, field.Name, false, field.Type)
			case posted:
				engine.SetField(ctx, field.Name, r.PostForm.Get(field.Name), field.Type)
			}
		}
	}

	switch action := r.PostForm.Get("action"); action {
	case "":
		return http.StatusOK, nil
	case "back":
		if err := engine.Retreat(); err != nil {
			return 0, StatusError{Code: http.StatusConflict, Err: err}
		}
		return http.StatusOK, nil
	case "next":
		result, err := engine.Advance()
		if err != nil {
			return 0, StatusError{Code: http.StatusConflict, Err: err}
		}
		return validationStatus(result), nil
	case "submit":
		result, err := engine.Submit(ctx)
		switch {
		case errors.Is(err, wizard.ErrNotLastStep), errors.Is(err, wizard.ErrAlreadySubmitted):
			return 0, StatusError{Code: http.StatusConflict, Err: err}
		case err != nil:
			return 0, StatusError{Code: http.StatusBadGateway, Err: err}
		}
		if !result.Valid() {
			return validationStatus(result), nil
		}
		s.flash = SubmittedMessage
		engine.Reset()
		return http.StatusOK, nil
	default:
		return 0, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("%w: %q", ErrUnknownAction, action)}
	}
}

func validationStatus(result wizard.ValidationErrors) int {
	if result.Valid() {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	s := h.sessionFor(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := h.checkCSRF(r, s); err != nil {
		h.logger.Warn("reset rejected", "session", s.id, "error", err)
		h.respond(w, r, s, statusOf(err))
		return
	}
	s.engine.Reset()
	h.respond(w, r, s, http.StatusOK)
}

// checkCSRF compares the posted token with the one issued for the session.
func (h *Handler) checkCSRF(r *http.Request, s *session) (int, error) {
	if h.csrfToken == nil {
		return http.StatusOK, nil
	}
	want := h.csrfToken(s.id)
	got := r.PostForm.Get(h.csrfName)
	if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return 0, StatusError{Code: http.StatusForbidden, Err: ErrInvalidCSRFToken}
	}
	return http.StatusOK, nil
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, s *session, status int) {
	renderer, err := h.registry.Negotiate(r, h.candidates...)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
		return
	}

	fields := []render.HiddenField{render.StepField(s.engine.CurrentStep())}
	if h.csrfToken != nil {
		fields = append(fields, render.CSRFToken(h.csrfName, h.csrfToken(s.id)))
	}
	body, err := renderer.Render(r.Context(), s.engine.View(), render.RenderOptions{
		Action: h.actionPath,
		Hidden: render.MergeHiddenFields(nil, fields...),
		Flash:  s.takeFlash(),
	})
	if err != nil {
		h.logger.Error("render failed", "session", s.id, "renderer", renderer.Name(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Add("Vary", "Accept")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
