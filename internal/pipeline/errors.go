package pipeline

import "fmt"

// RunError is an unrecoverable pipeline failure: the run produced no
// artifact and the Stage names the step that aborted it.
type RunError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *RunError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("run failed at %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("run failed at %s: %s", e.Stage, e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Cause
}
