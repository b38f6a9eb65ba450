package service

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

// ValidationError carries a message that can be shown to the client as is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
