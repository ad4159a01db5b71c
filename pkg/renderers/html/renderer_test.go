package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func newEngine(t *testing.T) *wizard.Engine {
	t.Helper()
	s, err := schema.Default()
	if err != nil {
		t.Fatalf("default schema: %v", err)
	}
	return wizard.New(s)
}

func renderView(t *testing.T, r *html.Renderer, view wizard.View, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(context.Background(), view, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_FirstStep(t *testing.T) {
	r, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	e := newEngine(t)
	_, _ = e.Advance()

	out := renderView(t, r, e.View(), render.RenderOptions{
		Action: "/wizard",
		Hidden: render.MergeHiddenFields(nil, render.StepField(0)),
	})

	for _, want := range []string{
		"<!DOCTYPE html>",
		`action="/wizard"`,
		"Step 1: Personal Information",
		"Step 1 of 2",
		`<input type="hidden" name="_step" value="0">`,
		`<input type="text" id="fw-name" name="name" value="" required>`,
		`<input type="date" id="fw-birthdate" name="birthdate"`,
		`<input type="checkbox" id="fw-agree" name="agree" value="true" required> Agree to Terms`,
		`<span class="formwizard-error" role="alert">Name is required</span>`,
		`value="next"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{`value="back"`, `value="submit"`} {
		if strings.Contains(out, unwanted) {
			t.Fatalf("output should not contain %q", unwanted)
		}
	}
}

func TestRender_ChoiceControls(t *testing.T) {
	r, err := html.New(html.WithFragment())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx := context.Background()
	e := newEngine(t)
	e.SetField(ctx, "name", "Ada", model.FieldTypeText)
	e.SetField(ctx, "birthdate", "1815-12-10", model.FieldTypeDate)
	e.SetField(ctx, "agree", true, model.FieldTypeCheckbox)
	if _, err := e.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	e.SetField(ctx, "gender", "female", model.FieldTypeRadio)

	out := renderView(t, r, e.View(), render.RenderOptions{Flash: "Saved"})

	if strings.Contains(out, "<!DOCTYPE html>") {
		t.Fatalf("fragment should not include the page shell")
	}
	for _, want := range []string{
		`<p class="formwizard-flash" role="status">Saved</p>`,
		`<option value="" disabled selected>Select Theme</option>`,
		`<option value="dark">Dark</option>`,
		`<input type="radio" name="gender" value="female" checked required> Female`,
		`value="back"`,
		`value="submit"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_SanitisesDescription(t *testing.T) {
	r, err := html.New(html.WithFragment())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	s := model.Schema{Steps: []model.Step{{
		Title:       "Intro",
		Description: `<p>Read the <a href="https://example.com/terms">terms</a></p><script>alert(1)</script>`,
		Fields:      []model.FieldSpec{{Name: "q", Label: "Q", Type: model.FieldTypeText}},
	}}}
	out := renderView(t, r, wizard.New(s).View(), render.RenderOptions{})

	if strings.Contains(out, "<script>") {
		t.Fatalf("script survived sanitisation:\n%s", out)
	}
	if !strings.Contains(out, `<a href="https://example.com/terms" rel="nofollow">terms</a>`) {
		t.Fatalf("expected sanitised link:\n%s", out)
	}
}

func TestRender_EscapesValues(t *testing.T) {
	r, err := html.New(html.WithFragment())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	e := newEngine(t)
	e.SetField(context.Background(), "name", `"><script>`, model.FieldTypeText)
	out := renderView(t, r, e.View(), render.RenderOptions{})
	if strings.Contains(out, `"><script>`) {
		t.Fatalf("value not escaped:\n%s", out)
	}
}
