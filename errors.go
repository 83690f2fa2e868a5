package zsshconf

import (
	"errors"
	"fmt"
)

// ErrInvalidPort is wrapped by every error caused by an empty port list or a
// port outside of [1, 65535].
var ErrInvalidPort = errors.New("invalid port")

// ErrMismatchedFlags is thrown if the flags for one renderer are passed to an
// incompatible renderer.
var ErrMismatchedFlags = errors.New("mismatched flag/renderer")

// ErrInvalidArguments is thrown if the command-line arguments are invalid.
var ErrInvalidArguments = errors.New("invalid arguments")

// ErrUnknownRenderer is returned when a job names a renderer that was never
// registered.
var ErrUnknownRenderer = errors.New("unknown renderer")

// ErrInvalidHostPattern is returned for host patterns that cannot be compiled.
var ErrInvalidHostPattern = errors.New("invalid host pattern")

// PortError describes which port made a PolicyInput invalid.
type PortError struct {
	// Index is the position of the offending port, or -1 for an empty list.
	Index int
	Port  int
	Empty bool
}

func (e *PortError) Error() string {
	if e.Empty {
		return "invalid port: empty port list"
	}
	return fmt.Sprintf("invalid port: %d at position %d (must be in [1, 65535])", e.Port, e.Index)
}

// Unwrap lets errors.Is match ErrInvalidPort.
func (e *PortError) Unwrap() error {
	return ErrInvalidPort
}

// RenderError ties a failure to the render job that produced it.
type RenderError struct {
	Job string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Job, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
