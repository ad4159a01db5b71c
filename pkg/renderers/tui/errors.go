package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnknownOutputFormat is returned by ParseOutputFormat.
	ErrUnknownOutputFormat = errors.New("tui: unknown output format")
)
