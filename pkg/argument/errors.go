package argument

import (
	"errors"
	"fmt"
)

var errValidation = errors.New("rejected by validator")

// MissingRequiredError reports a required argument that received no value
// from either named or positional matching.
type MissingRequiredError struct {
	Argument string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("missing required argument %q", e.Argument)
}

// InvalidValueError reports a value that failed conversion or validation.
// It keeps the argument name and the raw text that caused the failure.
type InvalidValueError struct {
	Argument string
	Raw      string
	Cause    error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for argument %q: %v", e.Raw, e.Argument, e.Cause)
}

func (e *InvalidValueError) Unwrap() error { return e.Cause }
