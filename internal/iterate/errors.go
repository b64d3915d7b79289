package iterate

import "fmt"

// NotFoundError reports a -start name that never appears in the ordered,
// already-filtered candidate sequence.
type NotFoundError struct {
	Start string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("start subproject %q is not among the iteration candidates", e.Start)
}

// AbortError reports that the requested filter combination matched nothing.
// It is informational, not a bug: a vacuous plan simply has nothing to run.
type AbortError struct{}

// Error implements the error interface for AbortError.
func (e *AbortError) Error() string {
	return "zero subprojects matched"
}

// TaskFailure reports that the external task callback failed for one unit.
// Everything completed before the unit stands; the failure carries the data
// an operator needs to resume.
type TaskFailure struct {
	Unit     string
	Position int
	Total    int
	Err      error
}

// Error implements the error interface for TaskFailure.
func (e *TaskFailure) Error() string {
	return fmt.Sprintf("task failed at %s (%d/%d): %v", e.Unit, e.Position, e.Total, e.Err)
}

// Unwrap exposes the underlying callback error.
func (e *TaskFailure) Unwrap() error {
	return e.Err
}
