package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/server"
	"github.com/goliatone/go-formwizard/pkg/store/memory"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
	accept  string
}

func (c *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if c.accept != "" {
		req.Header.Set("Accept", c.accept)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == server.DefaultCookieName {
			c.cookie = cookie
		}
	}
	return rec
}

type jsonView struct {
	Step   int    `json:"step"`
	Title  string `json:"title"`
	Flash  string `json:"flash"`
	Fields []struct {
		Name    string `json:"name"`
		Value   string `json:"value"`
		Checked bool   `json:"checked"`
		Error   string `json:"error"`
	} `json:"fields"`
}

func (c *client) view(rec *httptest.ResponseRecorder) jsonView {
	c.t.Helper()
	var v jsonView
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		c.t.Fatalf("decode view: %v\n%s", err, rec.Body.String())
	}
	return v
}

func newHandler(t *testing.T, opts ...server.Option) *server.Handler {
	t.Helper()
	s, err := schema.Default()
	if err != nil {
		t.Fatalf("default schema: %v", err)
	}
	h, err := server.New(s, opts...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h
}

func stepOne() url.Values {
	return url.Values{
		"_step":     {"0"},
		"name":      {"Ada"},
		"birthdate": {"1815-12-10"},
		"agree":     {"true"},
		"action":    {"next"},
	}
}

func TestHandler_WalksWizardInHTML(t *testing.T) {
	st := memory.New()
	var submitted wizard.Values
	h := newHandler(t, server.WithStore(st), server.WithSubmitHandler(func(_ context.Context, v wizard.Values) error {
		submitted = v
		return nil
	}))
	c := &client{t: t, handler: h}

	rec := c.do(http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK || c.cookie == nil {
		t.Fatalf("expected 200 with session cookie, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Step 1: Personal Information") {
		t.Fatalf("first step not rendered:\n%s", rec.Body.String())
	}

	rec = c.do(http.MethodPost, "/", url.Values{"_step": {"0"}, "action": {"next"}})
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "Name is required") {
		t.Fatalf("expected validation errors, got %d:\n%s", rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodPost, "/", stepOne())
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Step 2: Preferences") {
		t.Fatalf("expected second step, got %d:\n%s", rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodPost, "/", url.Values{"_step": {"1"}, "theme": {"dark"}, "action": {"back"}})
	if !strings.Contains(rec.Body.String(), `value="Ada"`) {
		t.Fatalf("expected answers kept after back:\n%s", rec.Body.String())
	}

	c.do(http.MethodPost, "/", stepOne())
	rec = c.do(http.MethodPost, "/", url.Values{"_step": {"1"}, "gender": {"female"}, "action": {"submit"}})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), server.SubmittedMessage) {
		t.Fatalf("expected submit acknowledgement, got %d:\n%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Step 1: Personal Information") {
		t.Fatalf("expected fresh first step after submit")
	}

	want := wizard.Values{"name": "Ada", "birthdate": "1815-12-10", "agree": true, "theme": "dark", "gender": "female"}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
	if st.Len() != 0 {
		t.Fatalf("expected store cleared after submit, got %d entries", st.Len())
	}

	rec = c.do(http.MethodGet, "/", nil)
	if strings.Contains(rec.Body.String(), server.SubmittedMessage) {
		t.Fatalf("flash should be shown once")
	}
}

func TestHandler_JSONAndMissingCheckbox(t *testing.T) {
	c := &client{t: t, handler: newHandler(t), accept: "application/json"}

	form := stepOne()
	form.Del("agree")
	rec := c.do(http.MethodPost, "/", form)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json, got %q", ct)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	v := c.view(rec)
	errs := map[string]string{}
	for _, f := range v.Fields {
		if f.Error != "" {
			errs[f.Name] = f.Error
		}
	}
	if diff := cmp.Diff(map[string]string{"agree": "Agree to Terms is required"}, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_RestoresSessionAcrossRestart(t *testing.T) {
	st := memory.New()
	first := &client{t: t, handler: newHandler(t, server.WithStore(st)), accept: "application/json"}
	first.do(http.MethodPost, "/", url.Values{"name": {"Grace"}})

	second := &client{t: t, handler: newHandler(t, server.WithStore(st)), accept: "application/json", cookie: first.cookie}
	v := second.view(second.do(http.MethodGet, "/", nil))
	if v.Fields[0].Name != "name" || v.Fields[0].Value != "Grace" {
		t.Fatalf("expected restored name, got %+v", v.Fields[0])
	}

	stranger := &client{t: t, handler: second.handler, accept: "application/json"}
	v = stranger.view(stranger.do(http.MethodGet, "/", nil))
	if v.Fields[0].Value != "" {
		t.Fatalf("sessions leaked: %+v", v.Fields[0])
	}
}

func TestHandler_RejectsBadPosts(t *testing.T) {
	c := &client{t: t, handler: newHandler(t), accept: "application/json"}

	if rec := c.do(http.MethodPost, "/", url.Values{"_step": {"1"}, "action": {"next"}}); rec.Code != http.StatusConflict {
		t.Fatalf("stale step: expected 409, got %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/", url.Values{"action": {"jump"}}); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown action: expected 400, got %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/", url.Values{"action": {"back"}}); rec.Code != http.StatusConflict {
		t.Fatalf("back on first step: expected 409, got %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/", url.Values{"action": {"submit"}}); rec.Code != http.StatusConflict {
		t.Fatalf("submit before last step: expected 409, got %d", rec.Code)
	}
	if rec := c.do(http.MethodDelete, "/", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}

	c.accept = "image/png"
	if rec := c.do(http.MethodGet, "/", nil); rec.Code != http.StatusNotAcceptable {
		t.Fatalf("expected 406, got %d", rec.Code)
	}
}

func TestHandler_SubmitFailureKeepsAnswers(t *testing.T) {
	h := newHandler(t, server.WithSubmitHandler(func(context.Context, wizard.Values) error {
		return errors.New("backend down")
	}))
	c := &client{t: t, handler: h, accept: "application/json"}

	c.do(http.MethodPost, "/", stepOne())
	rec := c.do(http.MethodPost, "/", url.Values{"theme": {"light"}, "gender": {"male"}, "action": {"submit"}})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	v := c.view(rec)
	if v.Flash != server.SubmitFailedMessage || v.Step != 1 {
		t.Fatalf("unexpected view after failure: %+v", v)
	}
	if v.Fields[0].Value != "light" {
		t.Fatalf("answers lost after failure: %+v", v.Fields)
	}
}

func TestHandler_ResetAndCSRF(t *testing.T) {
	h := newHandler(t, server.WithCSRFToken("_csrf", func(id string) string { return "token-" + id }))
	c := &client{t: t, handler: h}

	c.do(http.MethodGet, "/", nil)
	token := "token-" + c.cookie.Value

	form := stepOne()
	form.Set("_csrf", token)
	if rec := c.do(http.MethodPost, "/", form); !strings.Contains(rec.Body.String(), "Step 2: Preferences") {
		t.Fatalf("expected second step:\n%s", rec.Body.String())
	}

	rec := c.do(http.MethodPost, "/reset", url.Values{"_csrf": {token}})
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, "Step 1: Personal Information") {
		t.Fatalf("expected first step after reset, got %d:\n%s", rec.Code, body)
	}
	if !strings.Contains(body, `name="_csrf" value="`+token+`"`) {
		t.Fatalf("csrf field missing:\n%s", body)
	}
	if !strings.Contains(body, `name="_step" value="0"`) {
		t.Fatalf("step field missing:\n%s", body)
	}
	if h.Sessions() != 1 {
		t.Fatalf("expected one cached session, got %d", h.Sessions())
	}
}

func TestHandler_RejectsForgedCSRFToken(t *testing.T) {
	st := memory.New()
	h := newHandler(t, server.WithStore(st), server.WithCSRFToken("_csrf", func(id string) string { return "token-" + id }))
	c := &client{t: t, handler: h, accept: "application/json"}
	c.do(http.MethodGet, "/", nil)

	for name, token := range map[string]string{"forged": "forged", "missing": ""} {
		t.Run(name, func(t *testing.T) {
			form := url.Values{"name": {"Mallory"}}
			if token != "" {
				form.Set("_csrf", token)
			}
			rec := c.do(http.MethodPost, "/", form)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
			if v := c.view(rec); v.Fields[0].Value != "" {
				t.Fatalf("forged post applied: %+v", v.Fields[0])
			}
			if st.Len() != 0 {
				t.Fatalf("forged post persisted %d entries", st.Len())
			}
		})
	}

	rec := c.do(http.MethodPost, "/", url.Values{"name": {"Ada"}, "_csrf": {"token-" + c.cookie.Value}})
	if v := c.view(rec); rec.Code != http.StatusOK || v.Fields[0].Value != "Ada" {
		t.Fatalf("valid token rejected: %d %+v", rec.Code, v.Fields[0])
	}

	c.do(http.MethodPost, "/", url.Values{"action": {"next"}, "birthdate": {"1815-12-10"}, "agree": {"true"}, "_csrf": {"token-" + c.cookie.Value}})
	if rec := c.do(http.MethodPost, "/reset", url.Values{"_csrf": {"forged"}}); rec.Code != http.StatusForbidden || c.view(rec).Step != 1 {
		t.Fatalf("forged reset: expected 403 on step 2, got %d", rec.Code)
	}
}

func TestHandler_RejectsUndeclaredOption(t *testing.T) {
	c := &client{t: t, handler: newHandler(t), accept: "application/json"}
	c.do(http.MethodPost, "/", stepOne())

	rec := c.do(http.MethodPost, "/", url.Values{"theme": {"purple"}, "gender": {"female"}, "action": {"submit"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	v := c.view(rec)
	if v.Step != 1 || v.Fields[0].Value != "" || v.Fields[1].Value != "" {
		t.Fatalf("undeclared option applied: %+v", v)
	}
}

func TestHandler_EvictsSessions(t *testing.T) {
	t.Run("cap", func(t *testing.T) {
		h := newHandler(t, server.WithMaxSessions(3))
		for i := 0; i < 5; i++ {
			c := &client{t: t, handler: h}
			c.do(http.MethodGet, "/", nil)
		}
		if h.Sessions() != 3 {
			t.Fatalf("expected 3 cached sessions, got %d", h.Sessions())
		}
	})

	t.Run("idle", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		st := memory.New()
		h := newHandler(t,
			server.WithStore(st),
			server.WithSessionTTL(time.Minute),
			server.WithClock(func() time.Time { return now }),
		)

		idle := &client{t: t, handler: h, accept: "application/json"}
		idle.do(http.MethodPost, "/", url.Values{"name": {"Grace"}})

		now = now.Add(2 * time.Minute)
		other := &client{t: t, handler: h}
		other.do(http.MethodGet, "/", nil)
		if h.Sessions() != 1 {
			t.Fatalf("expected idle session evicted, got %d cached", h.Sessions())
		}

		v := idle.view(idle.do(http.MethodGet, "/", nil))
		if v.Fields[0].Value != "Grace" {
			t.Fatalf("evicted session not restored: %+v", v.Fields[0])
		}
	})
}

func TestNew_RejectsInvalidSetup(t *testing.T) {
	if _, err := server.New(model.Schema{}); err == nil {
		t.Fatalf("expected error for empty schema")
	}

	s, err := schema.Default()
	if err != nil {
		t.Fatalf("default schema: %v", err)
	}
	if _, err := server.New(s, server.WithRegistry(render.NewRegistry(), "html")); err == nil {
		t.Fatalf("expected error for unregistered renderer")
	}
}
