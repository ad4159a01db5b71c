package wizard

import "github.com/goliatone/go-formwizard/pkg/model"

// View is the render-ready projection of the active step.
type View struct {
	SchemaID    string      `json:"schemaId,omitempty"`
	SchemaTitle string      `json:"schemaTitle,omitempty"`
	Step        int         `json:"step"`
	StepCount   int         `json:"stepCount"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Fields      []FieldView `json:"fields"`
	Navigation  Navigation  `json:"navigation"`
	Submitted   bool        `json:"submitted"`
}

// Progress returns the one-based position of the step and the step count.
func (v View) Progress() (int, int) {
	return v.Step + 1, v.StepCount
}

// FieldView carries everything a host needs to draw one control.
type FieldView struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Type        model.FieldType `json:"type"`
	Required    bool            `json:"required"`
	Placeholder string          `json:"placeholder,omitempty"`
	Help        string          `json:"help,omitempty"`
	Options     []OptionView    `json:"options,omitempty"`
	Value       string          `json:"value"`
	Checked     bool            `json:"checked"`
	Error       string          `json:"error,omitempty"`
}

// OptionView is one choice of a dropdown or radio control.
type OptionView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// Navigation lists the actions available on the active step.
type Navigation struct {
	Back   bool `json:"back"`
	Next   bool `json:"next"`
	Submit bool `json:"submit"`
}

// View projects the active step with its values and errors.
func (e *Engine) View() View {
	step := e.schema.Steps[e.step]
	last := e.schema.LastStep()

	view := View{
		SchemaID:    e.schema.ID,
		SchemaTitle: e.schema.Title,
		Step:        e.step,
		StepCount:   len(e.schema.Steps),
		Title:       step.Title,
		Description: step.Description,
		Fields:      make([]FieldView, 0, len(step.Fields)),
		Navigation: Navigation{
			Back:   e.step > 0,
			Next:   e.step < last,
			Submit: e.step == last,
		},
		Submitted: e.submitted,
	}

	for _, field := range step.Fields {
		fv := FieldView{
			Name:        field.Name,
			Label:       field.Label,
			Type:        field.Type,
			Required:    field.Required,
			Placeholder: field.Placeholder,
			Help:        field.Help,
			Error:       e.errors[field.Name],
		}
		if field.Type == model.FieldTypeCheckbox {
			fv.Checked = e.values.Bool(field.Name)
		} else {
			fv.Value = e.values.String(field.Name)
		}
		for _, opt := range field.Options {
			fv.Options = append(fv.Options, OptionView{
				Label:    opt.Label,
				Value:    opt.Value,
				Selected: opt.Value == fv.Value,
			})
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}
