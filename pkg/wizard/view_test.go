package wizard_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestView_FirstStep(t *testing.T) {
	e := newEngine(t, profile())
	e.SetField(context.Background(), "agree", true, model.FieldTypeCheckbox)
	_, _ = e.Advance()

	view := e.View()
	if view.Title != "Step 1: Personal Information" {
		t.Fatalf("unexpected title %q", view.Title)
	}
	if diff := cmp.Diff(wizard.Navigation{Next: true}, view.Navigation); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}
	current, total := view.Progress()
	if current != 1 || total != 2 {
		t.Fatalf("progress = %d/%d", current, total)
	}
	if view.Fields[0].Error != "Name is required" {
		t.Fatalf("expected name error, got %q", view.Fields[0].Error)
	}
	if !view.Fields[2].Checked || view.Fields[2].Error != "" {
		t.Fatalf("agree field mismatch: %+v", view.Fields[2])
	}
}

func TestView_LastStepOptions(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, profile())
	fillFirstStep(ctx, e)
	_, _ = e.Advance()
	e.SetField(ctx, "theme", "dark", model.FieldTypeDropdown)

	view := e.View()
	if diff := cmp.Diff(wizard.Navigation{Back: true, Submit: true}, view.Navigation); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}
	want := []wizard.OptionView{
		{Label: "Light", Value: "light"},
		{Label: "Dark", Value: "dark", Selected: true},
	}
	if diff := cmp.Diff(want, view.Fields[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}
