// Package openapi turns the request body of an OpenAPI 3 operation into a
// wizard schema. The Parser contract is implemented under internal/openapi so
// kin-openapi types stay out of the public API; construction helpers live in
// the top-level formwizard package to avoid import cycles.
package openapi
