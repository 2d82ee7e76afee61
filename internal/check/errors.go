package check

import (
	"errors"
	"fmt"
)

// Stage identifies where in the request lifecycle a check failed
type Stage int

const (
	StageTransport Stage = iota + 1
	StageBodyRead
	StageDecode
)

func (s Stage) String() string {
	switch s {
	case StageTransport:
		return "transport"
	case StageBodyRead:
		return "body-read"
	case StageDecode:
		return "decode"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Error represents a failure to obtain a check result from the server.
// Only the wrapped error text is ever shown to the user.
type Error struct {
	Stage Stage
	Err   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Stage.String() + " failed"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error
func NewError(stage Stage, err error) *Error {
	return &Error{
		Stage: stage,
		Err:   err,
	}
}

// StageOf returns the stage of a check Error, or 0 if err is not one
func StageOf(err error) Stage {
	var checkErr *Error
	if errors.As(err, &checkErr) {
		return checkErr.Stage
	}
	return 0
}

// IsTransportError checks if the request could not be completed
func IsTransportError(err error) bool {
	return StageOf(err) == StageTransport
}

// IsBodyReadError checks if the response body could not be read
func IsBodyReadError(err error) bool {
	return StageOf(err) == StageBodyRead
}

// IsDecodeError checks if the response body was not a valid check result
func IsDecodeError(err error) bool {
	return StageOf(err) == StageDecode
}
