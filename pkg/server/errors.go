package server

import (
	"errors"
	"net/http"
)

var (
	// ErrUnknownAction is returned for a POST whose action is not back, next or submit.
	ErrUnknownAction = errors.New("server: unknown action")
	// ErrStaleStep is returned when a POST targets a step other than the active one.
	ErrStaleStep = errors.New("server: form posted for a stale step")
	// ErrInvalidCSRFToken is returned when a POST carries a missing or wrong token.
	ErrInvalidCSRFToken = errors.New("server: invalid csrf token")
	// ErrUnknownOption is returned when a choice field is posted with an undeclared value.
	ErrUnknownOption = errors.New("server: value is not a declared option")
)

// StatusError pairs an error with the HTTP status it should produce.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func statusOf(err error) int {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode()
	}
	return http.StatusInternalServerError
}
