// Package tui hosts a wizard in the terminal: each step's fields are prompted
// with survey, navigation is chosen from the actions the step allows, and the
// submitted answers are serialized to a writer.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	actionBack   = "Back"
	actionNext   = "Next"
	actionSubmit = "Submit"
	noneOption   = "(none)"
)

// Runner drives a wizard engine through prompts until it is submitted.
type Runner struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	restore           bool
}

// NewRunner constructs a Runner with defaults (survey driver, JSON output,
// restore on start).
func NewRunner(options ...Option) *Runner {
	r := &Runner{
		out:          io.Discard,
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		restore:      true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r
}

// Run restores persisted answers, walks the steps of e and returns the
// serialized submission. Aborting a prompt returns ErrAborted; answers kept by
// autosave remain in the engine's store.
func (r *Runner) Run(ctx context.Context, e *wizard.Engine) ([]byte, error) {
	if e.State().Submitted {
		e.Reset()
	}
	if r.restore && e.Restore(ctx) {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+"Restored saved answers."); err != nil {
			return nil, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		view := e.View()
		if err := r.announce(ctx, view); err != nil {
			return nil, err
		}
		for _, field := range view.Fields {
			if err := r.promptField(ctx, e, field); err != nil {
				return nil, err
			}
		}

		action, err := r.promptAction(ctx, view.Navigation)
		if err != nil {
			return nil, err
		}

		switch action {
		case actionBack:
			if err := e.Retreat(); err != nil {
				return nil, err
			}
		case actionNext:
			if _, err := e.Advance(); err != nil {
				return nil, err
			}
		case actionSubmit:
			values := e.State().Values
			if _, err := e.Submit(ctx); err != nil {
				return nil, err
			}
			if e.State().Submitted {
				return r.finish(ctx, e.Schema(), values)
			}
		}
	}
}

func (r *Runner) announce(ctx context.Context, view wizard.View) error {
	current, total := view.Progress()
	lines := []string{fmt.Sprintf("%s%s (%d/%d)", r.theme.StepPrefix, view.Title, current, total)}
	if view.Description != "" {
		lines = append(lines, r.theme.InfoPrefix+view.Description)
	}
	for _, field := range view.Fields {
		if field.Error != "" {
			lines = append(lines, r.theme.ErrorPrefix+field.Error)
		}
	}
	for _, line := range lines {
		if err := r.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, e *wizard.Engine, field wizard.FieldView) error {
	message := field.Label
	if field.Required {
		message += " *"
	}

	switch field.Type {
	case model.FieldTypeCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: field.Checked, Help: field.Help})
		if err != nil {
			return err
		}
		e.SetField(ctx, field.Name, checked, field.Type)
	case model.FieldTypeDropdown, model.FieldTypeRadio:
		value, err := r.promptChoice(ctx, message, field)
		if err != nil {
			return err
		}
		e.SetField(ctx, field.Name, value, field.Type)
	case model.FieldTypeText, model.FieldTypeEmail, model.FieldTypeNumber, model.FieldTypeDate:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   field.Value,
			Help:      inputHelp(field),
			Validator: validatorFor(field.Type),
		})
		if err != nil {
			return err
		}
		e.SetField(ctx, field.Name, strings.TrimSpace(answer), field.Type)
	}
	return nil
}

func (r *Runner) promptChoice(ctx context.Context, message string, field wizard.FieldView) (string, error) {
	var (
		labels []string
		values []string
	)
	if !field.Required {
		labels = append(labels, noneOption)
		values = append(values, "")
	}
	defaultIndex := -1
	for _, opt := range field.Options {
		if opt.Selected {
			defaultIndex = len(labels)
		}
		labels = append(labels, opt.Label)
		values = append(values, opt.Value)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: defaultIndex, Help: field.Help})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", fmt.Errorf("tui: selection %d out of range for %s", idx, field.Name)
	}
	return values[idx], nil
}

func (r *Runner) promptAction(ctx context.Context, nav wizard.Navigation) (string, error) {
	var actions []string
	if nav.Next {
		actions = append(actions, actionNext)
	}
	if nav.Submit {
		actions = append(actions, actionSubmit)
	}
	if nav.Back {
		actions = append(actions, actionBack)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Continue", Options: actions, DefaultIndex: 0})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return "", errors.New("tui: invalid navigation choice")
	}
	return actions[idx], nil
}

func (r *Runner) finish(ctx context.Context, schema model.Schema, values wizard.Values) ([]byte, error) {
	payload := map[string]any(values)
	if r.submitTransformer != nil {
		var err error
		payload, err = r.submitTransformer(payload)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	data, err := serialize(r.outputFormat, schema, payload)
	if err != nil {
		return nil, err
	}
	if _, err := r.out.Write(data); err != nil {
		return nil, fmt.Errorf("tui: write submission: %w", err)
	}
	if err := r.driver.Info(ctx, r.theme.InfoPrefix+"Form submitted successfully!"); err != nil {
		return nil, err
	}
	return data, nil
}

func inputHelp(field wizard.FieldView) string {
	parts := make([]string, 0, 2)
	if field.Help != "" {
		parts = append(parts, field.Help)
	}
	if field.Placeholder != "" {
		parts = append(parts, "e.g. "+field.Placeholder)
	}
	if field.Type == model.FieldTypeDate {
		parts = append(parts, "format YYYY-MM-DD")
	}
	return strings.Join(parts, "; ")
}

// validatorFor rejects malformed numbers and dates early. Empty answers pass;
// requiredness is checked by the engine when navigating.
func validatorFor(t model.FieldType) func(string) error {
	switch t {
	case model.FieldTypeNumber:
		return func(raw string) error {
			if raw = strings.TrimSpace(raw); raw == "" {
				return nil
			}
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return fmt.Errorf("%q is not a number", raw)
			}
			return nil
		}
	case model.FieldTypeDate:
		return func(raw string) error {
			if raw = strings.TrimSpace(raw); raw == "" {
				return nil
			}
			if _, err := time.Parse(time.DateOnly, raw); err != nil {
				return fmt.Errorf("%q is not a date (YYYY-MM-DD)", raw)
			}
			return nil
		}
	case model.FieldTypeEmail:
		return func(raw string) error {
			if raw = strings.TrimSpace(raw); raw == "" {
				return nil
			}
			if at := strings.Index(raw, "@"); at <= 0 || at == len(raw)-1 {
				return fmt.Errorf("%q is not an email address", raw)
			}
			return nil
		}
	}
	return nil
}

func serialize(format OutputFormat, schema model.Schema, values map[string]any) ([]byte, error) {
	switch format {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(key, fmt.Sprint(value))
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return prettyText(schema, values), nil
	default:
		data, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return data, nil
	}
}

// prettyText lists schema fields in declaration order by label, showing the
// label of the chosen option for dropdowns and radios. Keys the schema does
// not declare follow in name order.
func prettyText(schema model.Schema, values map[string]any) []byte {
	var b strings.Builder
	seen := make(map[string]struct{}, len(values))
	for _, field := range schema.Fields() {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		seen[field.Name] = struct{}{}
		display := fmt.Sprint(value)
		switch field.Type {
		case model.FieldTypeCheckbox:
			display = "no"
			if checked, _ := value.(bool); checked {
				display = "yes"
			}
		case model.FieldTypeDropdown, model.FieldTypeRadio:
			display = field.OptionLabel(display)
		}
		fmt.Fprintf(&b, "%s: %s\n", field.Label, display)
	}

	extra := make([]string, 0, len(values)-len(seen))
	for key := range values {
		if _, ok := seen[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		fmt.Fprintf(&b, "%s: %v\n", key, values[key])
	}
	return []byte(b.String())
}
