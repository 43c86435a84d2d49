package parsing

import "fmt"

// ParseError represents a payload that could not be decoded into the target shape
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

// RecordError represents a failure to normalize one record of a batch
type RecordError struct {
	Index   int
	Message string
	Cause   error
}

func (e *RecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("record %d: %s: %v", e.Index, e.Message, e.Cause)
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Message)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a normalized record that still violates the target schema
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
