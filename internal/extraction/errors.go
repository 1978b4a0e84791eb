package extraction

import "fmt"

// APICallError represents an error from the judgment service call
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing the extraction response
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// EmptyExtractionError signals an extraction tree with no usable content:
// no name, no work history, nothing to map. The pipeline treats this as
// unrecoverable.
type EmptyExtractionError struct{}

func (e *EmptyExtractionError) Error() string {
	return "extraction returned no usable resume content"
}
