// Package wizard implements the multi-step form engine: it owns the step
// position, the answers collected so far, and the validation errors of the
// visited step, and it hands completed answers to a host-supplied submit
// handler.
//
// The engine never renders. Hosts (terminal prompts, HTTP pages) read State or
// View after each operation, or subscribe with WithListener to be told when
// something changed. Validation failures are returned as ValidationErrors
// data; Go errors are reserved for navigation misuse, handler failures, and
// explicit Save calls.
//
// An Engine serves one session and is not safe for concurrent use.
package wizard
