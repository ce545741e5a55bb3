package filter

import (
	"errors"
	"fmt"
)

// ErrUnsupportedItem is returned when a filter is evaluated against something
// other than a project or media
var ErrUnsupportedItem = errors.New("unsupported item type")

// ErrPresetNotFound is returned when a preset name is not in the catalogue
var ErrPresetNotFound = errors.New("filter preset not found")

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated against an item
	EvaluationError struct {
		Expression string
		HashedID   string
		Reason     string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for '%s' on item '%s': %s", e.Expression, e.HashedID, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
