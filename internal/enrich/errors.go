// Package enrich implements the judgment-backed enrichment stages:
// seniority inference, summary generation and polishing, skill handling,
// bullet harmonization, and conservative proofreading. Every stage wraps
// at most one judgment-service call, and every stage reports failure as an
// explicit StageError instead of propagating it: the orchestrator's fixed
// policy is to continue with the record as it was before the stage.
package enrich

import "fmt"

// StageError describes a recoverable enrichment failure: a transport
// error, a malformed response shape, or a schema mismatch. A StageError
// never aborts the pipeline.
type StageError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

func stageErr(stage, message string, cause error) *StageError {
	return &StageError{Stage: stage, Message: message, Cause: cause}
}
