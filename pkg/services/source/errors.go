package source

import (
	"errors"
	"fmt"
)

// ErrInputUnavailable matches every error returned when a document cannot be obtained.
var ErrInputUnavailable = errors.New("input unavailable")

// InputUnavailableError names the input that could not be read and why.
type InputUnavailableError struct {
	Input string
	Err   error
}

func (e *InputUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrInputUnavailable, e.Input)
	}
	return fmt.Sprintf("%s: %s: %v", ErrInputUnavailable, e.Input, e.Err)
}

func (e *InputUnavailableError) Unwrap() error {
	return e.Err
}

func (e *InputUnavailableError) Is(target error) bool {
	return target == ErrInputUnavailable
}

func unavailable(input string, err error) error {
	return &InputUnavailableError{Input: input, Err: err}
}
