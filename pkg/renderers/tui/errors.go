package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrRetriesExhausted is returned when a field stays invalid after the
	// configured number of prompts.
	ErrRetriesExhausted = errors.New("tui: field still invalid after retries")
	// ErrFormDisabled is returned when filling a disabled form.
	ErrFormDisabled = errors.New("tui: form is disabled")
	// ErrNotSubmitted is returned when the user declines the final confirmation.
	ErrNotSubmitted = errors.New("tui: submission declined")
)
