package session

import (
	"errors"
	"fmt"
)

var (
	ErrNoSelection     = errors.New("nothing selected")
	ErrNeedDestination = errors.New("save destination required")
	ErrInvalidTime     = errors.New("time must be HH:MM:SS")
	ErrInvalidValue    = errors.New("value must not contain a line break")
	ErrInvalidEntry    = errors.New("entry does not fit the line format")
	ErrNotFound        = errors.New("entry not found")
	ErrLocked          = errors.New("another editor owns this workspace")
)

// IOError reports a file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
