package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/store"
)

// Engine holds the state of one form session over an immutable schema.
type Engine struct {
	schema           model.Schema
	store            store.Store
	sessionKey       string
	onSubmit         SubmitHandler
	listeners        []Listener
	logger           *slog.Logger
	autosave         bool
	submitValidation SubmitValidation

	values    Values
	step      int
	errors    ValidationErrors
	submitted bool
}

// New constructs an Engine positioned on the first step with no values. The
// schema is expected to have passed model.Validate.
func New(schema model.Schema, opts ...Option) *Engine {
	e := &Engine{
		schema:     schema,
		sessionKey: DefaultSessionKey,
		logger:     slog.Default(),
		autosave:   true,
		values:     Values{},
		errors:     ValidationErrors{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.logger = e.logger.With("component", "wizard", "session", e.sessionKey)
	return e
}

// Schema returns the schema driving the engine.
func (e *Engine) Schema() model.Schema {
	return e.schema
}

// SessionKey returns the store key of the session.
func (e *Engine) SessionKey() string {
	return e.sessionKey
}

// CurrentStep returns the zero-based index of the active step.
func (e *Engine) CurrentStep() int {
	return e.step
}

// State returns a deep copy of the session state.
func (e *Engine) State() FormState {
	return FormState{
		Values:      e.values.Clone(),
		CurrentStep: e.step,
		Errors:      e.errors.Clone(),
		Submitted:   e.submitted,
	}
}

// SetField stores raw under name, coerced according to fieldType. An empty
// fieldType falls back to the type declared by the schema, then to text.
// Store failures during autosave are logged.
func (e *Engine) SetField(ctx context.Context, name string, raw any, fieldType model.FieldType) {
	if fieldType == "" {
		fieldType = model.FieldTypeText
		if spec, ok := e.schema.Field(name); ok {
			fieldType = spec.Type
		}
	}
	e.values[name] = fieldType.Coerce(raw)
	e.emit(EventFieldChanged, name)

	if e.autosave && e.store != nil {
		if err := e.Save(ctx); err != nil {
			e.logger.Warn("autosave failed", "field", name, "error", err)
		}
	}
}

// ValidateStep checks the required fields of step idx against the current
// values. Out of range indexes yield an empty result.
func (e *Engine) ValidateStep(idx int) ValidationErrors {
	result := ValidationErrors{}
	if idx < 0 || idx >= len(e.schema.Steps) {
		return result
	}
	for _, field := range e.schema.Steps[idx].Fields {
		if !field.Required {
			continue
		}
		if !field.Type.IsEmpty(e.values[field.Name]) {
			continue
		}
		result[field.Name] = requiredMessage(field)
	}
	return result
}

func requiredMessage(field model.FieldSpec) string {
	switch field.Type {
	case model.FieldTypeDropdown, model.FieldTypeRadio:
		return "Please select a " + field.Label
	case model.FieldTypeText, model.FieldTypeEmail, model.FieldTypeNumber,
		model.FieldTypeDate, model.FieldTypeCheckbox:
		return field.Label + " is required"
	}
	return field.Label + " is required"
}

// Advance validates the active step and moves forward when it passes. A
// failing step keeps its position and the returned errors are recorded in the
// state. Advance on the last step returns ErrNoNextStep.
func (e *Engine) Advance() (ValidationErrors, error) {
	if e.step >= e.schema.LastStep() {
		return nil, ErrNoNextStep
	}
	result := e.ValidateStep(e.step)
	if !result.Valid() {
		e.errors = result.Clone()
		e.emit(EventValidationFailed, "")
		return result, nil
	}
	e.step++
	e.errors = ValidationErrors{}
	e.emit(EventStepChanged, "")
	return result, nil
}

// Retreat moves one step back without validation.
func (e *Engine) Retreat() error {
	if e.step <= 0 {
		return ErrNoPreviousStep
	}
	e.step--
	e.errors = ValidationErrors{}
	e.emit(EventStepChanged, "")
	return nil
}

// Submit validates and hands the values to the submit handler. On success the
// persisted entry is cleared, values are emptied and the session is marked
// submitted. Validation failures are returned as data with a nil error.
func (e *Engine) Submit(ctx context.Context) (ValidationErrors, error) {
	if e.submitted {
		return nil, ErrAlreadySubmitted
	}
	if e.step != e.schema.LastStep() {
		return nil, ErrNotLastStep
	}

	if result, failing := e.validateForSubmit(); !result.Valid() {
		moved := failing != e.step
		e.step = failing
		e.errors = result.Clone()
		if moved {
			e.emit(EventStepChanged, "")
		}
		e.emit(EventValidationFailed, "")
		return result, nil
	}

	if e.onSubmit != nil {
		if err := e.onSubmit(ctx, e.values.Clone()); err != nil {
			e.logger.Error("submit handler failed", "error", err)
			return nil, fmt.Errorf("wizard: submit handler: %w", err)
		}
	}

	if e.store != nil {
		if err := e.store.Clear(ctx, e.sessionKey); err != nil {
			e.logger.Warn("clear persisted values failed", "error", err)
		}
	}
	e.values = Values{}
	e.errors = ValidationErrors{}
	e.submitted = true
	e.logger.Info("form submitted", "schema", e.schema.ID)
	e.emit(EventSubmitted, "")
	return ValidationErrors{}, nil
}

func (e *Engine) validateForSubmit() (ValidationErrors, int) {
	if e.submitValidation == SubmitValidateAll {
		for idx := range e.schema.Steps {
			if result := e.ValidateStep(idx); !result.Valid() {
				return result, idx
			}
		}
		return ValidationErrors{}, e.step
	}
	return e.ValidateStep(e.step), e.step
}

// Restore seeds values from the store. Missing or malformed data and store
// failures are logged and reported as false. Position and errors are kept.
func (e *Engine) Restore(ctx context.Context) bool {
	if e.store == nil {
		return false
	}
	data, err := e.store.Load(ctx, e.sessionKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.logger.Debug("nothing to restore")
		} else {
			e.logger.Warn("restore failed", "error", err)
		}
		return false
	}
	restored, err := DecodeValues(data)
	if err != nil {
		e.logger.Warn("discarding malformed persisted values", "error", err)
		return false
	}
	for name, value := range restored {
		e.values[name] = value
	}
	e.logger.Debug("values restored", "fields", len(restored))
	e.emit(EventRestored, "")
	return true
}

// Reset returns a session to the first step and clears the submitted flag
// and errors.
func (e *Engine) Reset() {
	e.submitted = false
	e.step = 0
	e.errors = ValidationErrors{}
	e.emit(EventReset, "")
}

// Save writes the current values to the store.
func (e *Engine) Save(ctx context.Context) error {
	if e.store == nil {
		return ErrNoStore
	}
	data, err := EncodeValues(e.values)
	if err != nil {
		return err
	}
	if err := e.store.Save(ctx, e.sessionKey, data); err != nil {
		return fmt.Errorf("wizard: save values: %w", err)
	}
	return nil
}

func (e *Engine) emit(kind EventKind, field string) {
	if len(e.listeners) == 0 {
		return
	}
	ev := Event{Kind: kind, Field: field, State: e.State()}
	for _, l := range e.listeners {
		l.OnEvent(ev)
	}
}
