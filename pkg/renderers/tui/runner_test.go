package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/store/memory"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	failInputAt  int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.failInputAt > 0 && s.inputPos == s.failInputAt {
		return "", ErrAborted
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newEngine(t *testing.T, opts ...wizard.Option) *wizard.Engine {
	t.Helper()
	s, err := schema.Default()
	if err != nil {
		t.Fatalf("default schema: %v", err)
	}
	opts = append([]wizard.Option{wizard.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return wizard.New(s, opts...)
}

func TestRunner_CompletesWizard(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "1815-12-10", "Ada", "1815-12-10"},
		confirm:   []bool{false, true},
		selectIdx: []int{0, 0, 1, 1, 0},
	}
	var out bytes.Buffer
	runner := NewRunner(WithPromptDriver(driver), WithOutput(&out))

	data, err := runner.Run(context.Background(), newEngine(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := `{"agree":true,"birthdate":"1815-12-10","gender":"female","name":"Ada","theme":"dark"}`
	if string(data) != want || out.String() != want {
		t.Fatalf("unexpected output\nwant: %s\n got: %s (writer %s)", want, data, out.String())
	}

	joined := strings.Join(driver.infoMessages, "\n")
	for _, msg := range []string{
		"== Step 1: Personal Information (1/2)",
		"! Name is required",
		"! Agree to Terms is required",
		"== Step 2: Preferences (2/2)",
		"Form submitted successfully!",
	} {
		if !strings.Contains(joined, msg) {
			t.Fatalf("missing message %q in:\n%s", msg, joined)
		}
	}

	var navigation [][]string
	for _, cfg := range driver.selects {
		if cfg.Message == "Continue" {
			navigation = append(navigation, cfg.Options)
		}
	}
	wantNav := [][]string{{"Next"}, {"Next"}, {"Submit", "Back"}}
	if diff := cmp.Diff(wantNav, navigation); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_BackNavigation(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "1815-12-10", "Ada", "1815-12-10"},
		confirm:   []bool{true, true},
		selectIdx: []int{0, 0, 1, 1, 0, 1, 1, 0},
	}
	runner := NewRunner(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	data, err := runner.Run(context.Background(), newEngine(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "Name: Ada\nBirth Date: 1815-12-10\nAgree to Terms: yes\nTheme: Dark\nGender: Female\n"
	if string(data) != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, string(data))
	}
	if driver.inputPos != 4 {
		t.Fatalf("expected first step to be prompted twice, inputs used %d", driver.inputPos)
	}
}

func TestRunner_AbortKeepsAutosavedAnswers(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	driver := &stubDriver{inputs: []string{"Ada"}, failInputAt: 1}
	runner := NewRunner(WithPromptDriver(driver))

	_, err := runner.Run(ctx, newEngine(t, wizard.WithStore(mem)))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	resumed := newEngine(t, wizard.WithStore(mem))
	if !resumed.Restore(ctx) {
		t.Fatalf("expected saved answers")
	}
	if got := resumed.State().Values.String("name"); got != "Ada" {
		t.Fatalf("restored name = %q", got)
	}
}

func TestRunner_RestoresDefaults(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	seed := newEngine(t, wizard.WithStore(mem))
	seed.SetField(ctx, "name", "Grace", "")

	driver := &stubDriver{failInputAt: 0}
	var captured []InputConfig
	recording := &recordingDriver{stubDriver: driver, onInput: func(cfg InputConfig) { captured = append(captured, cfg) }}
	runner := NewRunner(WithPromptDriver(recording))
	_, _ = runner.Run(ctx, newEngine(t, wizard.WithStore(mem)))

	if len(captured) == 0 || captured[0].Default != "Grace" {
		t.Fatalf("expected restored default, got %+v", captured)
	}
	if driver.infoMessages[0] != "Restored saved answers." {
		t.Fatalf("expected restore notice, got %v", driver.infoMessages)
	}
}

type recordingDriver struct {
	*stubDriver
	onInput func(InputConfig)
}

func (r *recordingDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	r.onInput(cfg)
	return r.stubDriver.Input(ctx, cfg)
}

func TestSerialize(t *testing.T) {
	s := model.Schema{Steps: []model.Step{{Title: "One", Fields: []model.FieldSpec{
		{Name: "name", Label: "Full Name", Type: model.FieldTypeText},
		{Name: "agree", Label: "Agree", Type: model.FieldTypeCheckbox},
		{Name: "plan", Label: "Plan", Type: model.FieldTypeRadio, Options: []model.Option{{Label: "Pro plan", Value: "pro"}}},
	}}}}
	values := map[string]any{"name": "Ada Lovelace", "agree": false, "plan": "pro", "source": "cli"}
	cases := map[OutputFormat]string{
		OutputFormatJSON:           `{"agree":false,"name":"Ada Lovelace","plan":"pro","source":"cli"}`,
		OutputFormatFormURLEncoded: "agree=false&name=Ada+Lovelace&plan=pro&source=cli",
		OutputFormatPrettyText:     "Full Name: Ada Lovelace\nAgree: no\nPlan: Pro plan\nsource: cli\n",
	}
	for format, want := range cases {
		got, err := serialize(format, s, values)
		if err != nil {
			t.Fatalf("serialize %s: %v", format, err)
		}
		if string(got) != want {
			t.Fatalf("serialize %s = %q, want %q", format, got, want)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	if f, err := ParseOutputFormat(" Pretty "); err != nil || f != OutputFormatPrettyText {
		t.Fatalf("unexpected parse: %q %v", f, err)
	}
	if f, _ := ParseOutputFormat(""); f != OutputFormatJSON {
		t.Fatalf("empty format should default to json, got %q", f)
	}
	if _, err := ParseOutputFormat("xml"); !errors.Is(err, ErrUnknownOutputFormat) {
		t.Fatalf("expected ErrUnknownOutputFormat, got %v", err)
	}
}

func TestValidators(t *testing.T) {
	number := validatorFor("number")
	if number("42.5") != nil || number("") != nil || number("abc") == nil {
		t.Fatalf("number validator misbehaves")
	}
	date := validatorFor("date")
	if date("2024-02-29") != nil || date("29/02/2024") == nil {
		t.Fatalf("date validator misbehaves")
	}
	email := validatorFor("email")
	if email("ada@example.com") != nil || email("ada@") == nil || email("@x") == nil {
		t.Fatalf("email validator misbehaves")
	}
	if validatorFor("text") != nil {
		t.Fatalf("text fields need no validator")
	}
}
