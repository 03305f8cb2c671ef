package analyzer

import (
	"errors"
	"github.com/viant/playgraph/inspector"
)

// Resolution errors; all of them abort the run.
var (
	// ErrNotFound is returned when a role task directory or a task file is missing.
	ErrNotFound = inspector.ErrNotFound

	// ErrMissingVariable is returned when a dynamic include names a variable
	// that the play does not declare.
	ErrMissingVariable = errors.New("missing variable")

	// ErrParse is returned for malformed documents and include expressions.
	ErrParse = inspector.ErrParse

	// ErrCycleDetected is returned when a task file includes itself, directly or transitively.
	ErrCycleDetected = errors.New("include cycle detected")

	// ErrMaxDepthExceeded is returned when an include chain is deeper than the configured limit.
	ErrMaxDepthExceeded = errors.New("maximum include depth exceeded")
)
