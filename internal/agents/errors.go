package agents

import "fmt"

// ExecutorError represents a failed executor call
type ExecutorError struct {
	Stage   Stage
	Message string
	Cause   error
}

func (e *ExecutorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s executor error: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s executor error: %s", e.Stage, e.Message)
}

func (e *ExecutorError) Unwrap() error {
	return e.Cause
}
