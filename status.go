package zsshconf

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

// Status is the enum value that states how a render job ended.
type Status string

const (
	StatusSuccess          = Status("success")           // The table was resolved and rendered
	StatusInvalidPort      = Status("invalid-port")      // The policy's port list was empty or out of range
	StatusInvalidArguments = Status("invalid-arguments") // The job's flags or policy file could not be used
	StatusRenderError      = Status("render-error")      // The renderer failed to serialize the table
	StatusUnknownError     = Status("unknown-error")     // Catch-all for unrecognized errors
)

// StatusError is an error that also carries a Status.
type StatusError struct {
	Status Status
	Err    error
}

// Error forwards the wrapped error's Error() method.
func (err *StatusError) Error() string {
	if err.Err == nil {
		return "<nil>"
	}
	return err.Err.Error()
}

func (err *StatusError) Unwrap() error {
	return err.Err
}

// NewStatusError returns a StatusError with the given status and error.
func NewStatusError(status Status, err error) *StatusError {
	return &StatusError{Status: status, Err: err}
}

// TryGetStatus classifies err. A nil error is StatusSuccess; an unrecognized
// one is StatusUnknownError.
func TryGetStatus(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return se.Status
	case errors.Is(err, ErrInvalidPort):
		return StatusInvalidPort
	case errors.Is(err, ErrInvalidArguments), errors.Is(err, ErrInvalidHostPattern),
		errors.Is(err, ErrMismatchedFlags), errors.Is(err, ErrUnknownRenderer):
		return StatusInvalidArguments
	default:
		log.Debugf("Failed to detect status from %v", err)
		return StatusUnknownError
	}
}
