package openapi_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/openapi"
)

func accountOperation() openapi.Operation {
	return openapi.Operation{
		ID:      "createAccount",
		Method:  "POST",
		Summary: "Create account",
		Request: openapi.Schema{
			Type:     "object",
			Required: []string{"email", "plan", "terms"},
			Properties: map[string]openapi.Schema{
				"email":    {Type: "string", Format: "email", Extensions: map[string]any{openapi.ExtensionOrder: float64(1)}},
				"fullName": {Type: "string", Title: "Full name", Extensions: map[string]any{openapi.ExtensionOrder: float64(0)}},
				"birthday": {Type: "string", Format: "date"},
				"seats":    {Type: "integer"},
				"terms":    {Type: "boolean", Extensions: map[string]any{openapi.ExtensionStep: "Confirm"}},
				"plan": {Type: "string", Enum: []any{"free", "pro"}, Extensions: map[string]any{
					openapi.ExtensionStep:            "Plan",
					openapi.ExtensionStepDescription: "Pick a plan",
					openapi.ExtensionWidget:          "radio",
				}},
				"region": {Type: "string", Enum: []any{"eu", "us"}, Extensions: map[string]any{openapi.ExtensionStep: "Plan"}},
			},
		},
	}
}

func TestFormSchema_MapsProperties(t *testing.T) {
	got, err := openapi.FormSchema(accountOperation())
	if err != nil {
		t.Fatalf("form schema: %v", err)
	}

	type row struct {
		Step     string
		Name     string
		Label    string
		Type     model.FieldType
		Required bool
	}
	var rows []row
	for _, step := range got.Steps {
		for _, f := range step.Fields {
			rows = append(rows, row{step.Title, f.Name, f.Label, f.Type, f.Required})
		}
	}
	want := []row{
		{"Create account", "fullName", "Full name", model.FieldTypeText, false},
		{"Create account", "email", "Email", model.FieldTypeEmail, true},
		{"Create account", "birthday", "Birthday", model.FieldTypeDate, false},
		{"Create account", "seats", "Seats", model.FieldTypeNumber, false},
		{"Plan", "plan", "Plan", model.FieldTypeRadio, true},
		{"Plan", "region", "Region", model.FieldTypeDropdown, false},
		{"Confirm", "terms", "Terms", model.FieldTypeCheckbox, true},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if got.Steps[1].Description != "Pick a plan" {
		t.Fatalf("step description lost: %q", got.Steps[1].Description)
	}
	plan, _ := got.Field("plan")
	wantOptions := []model.Option{{Label: "free", Value: "free"}, {Label: "pro", Value: "pro"}}
	if diff := cmp.Diff(wantOptions, plan.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestFormSchema_FallbackStepTitle(t *testing.T) {
	op := openapi.Operation{ID: "x", Request: openapi.Schema{Properties: map[string]openapi.Schema{"a": {Type: "string"}}}}
	got, err := openapi.FormSchema(op)
	if err != nil {
		t.Fatalf("form schema: %v", err)
	}
	if got.Steps[0].Title != "Details" {
		t.Fatalf("expected Details fallback, got %q", got.Steps[0].Title)
	}
}

func TestFormSchema_NoProperties(t *testing.T) {
	if _, err := openapi.FormSchema(openapi.Operation{ID: "empty"}); err == nil {
		t.Fatalf("expected error for empty request body")
	}
}

func TestSelectOperation(t *testing.T) {
	ops := map[string]openapi.Operation{"only": {ID: "only"}}
	if op, err := openapi.SelectOperation(ops, ""); err != nil || op.ID != "only" {
		t.Fatalf("single operation: %+v %v", op, err)
	}
	ops["other"] = openapi.Operation{ID: "other"}
	if _, err := openapi.SelectOperation(ops, ""); err == nil {
		t.Fatalf("expected ambiguity error")
	}
	if _, err := openapi.SelectOperation(ops, "missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}
