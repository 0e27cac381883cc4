package agent

import (
	"errors"
	"fmt"
)

// Sentinel errors for invalid runs. They are returned before any model call.
var (
	ErrInvalidMaxIterations = errors.New("agent: max iterations must be at least 1")
	ErrEmptyQuestion        = errors.New("agent: question is empty")
	ErrNilModel             = errors.New("agent: model is nil")
)

// ModelError is returned when a model invocation fails. It aborts the run.
type ModelError struct {
	// Iteration is the 1-indexed iteration of the failed call. For the
	// forced-final call it is MaxIterations+1.
	Iteration int
	// Final reports whether the forced-final call failed.
	Final bool
	Err   error
}

func (e *ModelError) Error() string {
	if e.Final {
		return fmt.Sprintf("agent: final model call failed: %v", e.Err)
	}
	return fmt.Sprintf("agent: model call failed at iteration %d: %v", e.Iteration, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}
