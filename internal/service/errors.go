package service

import "fmt"

// ValidationError reports malformed or constraint-violating input.
// The operation it aborts has no side effects.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports an input that collides with existing state,
// such as a duplicate menu item name.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
