package parser

import (
	"errors"
	"fmt"
)

// ErrNotCommand marks text that does not start with the command marker.
var ErrNotCommand = errors.New("not a command")

var errFlagValue = errors.New("flags take no value")

// UnknownArgumentError reports a named key that matches no declared alias and
// is not decomposable into single-character flag aliases.
type UnknownArgumentError struct {
	Key string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unknown argument %q", e.Key)
}

// MissingValueError reports a non-flag named key with no usable value: the
// key was the last token, or the next token is itself a named key.
type MissingValueError struct {
	Key   string
	Found string // the named key found instead of a value, empty at end of input
}

func (e *MissingValueError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("expected value for argument %q but found end of input", e.Key)
	}
	return fmt.Sprintf("expected value for argument %q but found named argument %q", e.Key, e.Found)
}
