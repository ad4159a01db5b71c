package wizard

import (
	"sort"
	"strings"
)

// Values maps field names to stored answers: bool for checkboxes, string for
// every other field type. Absent keys mean the field was never touched.
type Values map[string]any

// Clone returns a shallow copy; stored values are immutable scalars.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// String returns the value stored for name as a string, or "".
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Bool returns the value stored for name as a bool, or false.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// ValidationErrors maps field names to human-readable messages. An empty map
// means the validated step passed.
type ValidationErrors map[string]string

// Valid reports whether no field failed.
func (e ValidationErrors) Valid() bool {
	return len(e) == 0
}

// Fields returns the failing field names in sorted order.
func (e ValidationErrors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Error renders the messages in field order so a ValidationErrors can be
// logged or wrapped when a host needs an error value.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, name := range e.Fields() {
		msgs = append(msgs, e[name])
	}
	return strings.Join(msgs, "; ")
}

// Clone returns a copy.
func (e ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// FormState is a snapshot of a session.
type FormState struct {
	Values      Values
	CurrentStep int
	Errors      ValidationErrors
	Submitted   bool
}
