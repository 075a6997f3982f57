package domain

import (
	"errors"
	"fmt"
)

// EngineUnavailableError means the compute engine binary could not be
// located or launched at all. Fatal to the process.
type EngineUnavailableError struct {
	Binary string
	Err    error
}

func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("compute engine unavailable: %s: %v", e.Binary, e.Err)
}

func (e *EngineUnavailableError) Unwrap() error {
	return e.Err
}

// EngineExecutionError means the engine launched but returned failure.
// Fatal to the process: a failing engine is a build or configuration
// problem the user must fix, not a transient fault worth retrying.
type EngineExecutionError struct {
	Kind      WorkloadKind
	Magnitude int
	ExitCode  int
	Stderr    string
	Err       error
}

func (e *EngineExecutionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("engine failed: %s %d (exit %d): %s", e.Kind, e.Magnitude, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("engine failed: %s %d (exit %d): %v", e.Kind, e.Magnitude, e.ExitCode, e.Err)
}

func (e *EngineExecutionError) Unwrap() error {
	return e.Err
}

// ValidationError means a user-entered magnitude fell outside the declared
// bounds for the active flow. Recovered locally by re-prompting.
type ValidationError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// IsFatal reports whether err must terminate the whole process rather
// than the current flow. Only engine errors qualify.
func IsFatal(err error) bool {
	var unavailable *EngineUnavailableError
	var execution *EngineExecutionError
	return errors.As(err, &unavailable) || errors.As(err, &execution)
}
