// Package model defines the wizard schema consumed by the engine and the
// renderers: an ordered list of steps, each holding typed field specs. The
// field type is a closed enumeration (text, email, number, date, checkbox,
// dropdown, radio); coercion of raw input and the emptiness rule used by
// required-field validation are defined per variant on FieldType. Concrete
// types live in internal/model and are re-exported here so the public surface
// stays stable while builder internals move.
package model
