// Package rendering produces the Markdown companion artifact for a
// normalized resume record.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing the Markdown template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
