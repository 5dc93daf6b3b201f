package drivepath

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPath       = errors.New("invalid path")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotAFile          = errors.New("not a file")
	ErrNotAFolder        = errors.New("not a folder")
	ErrNotReadable       = errors.New("not readable")
	ErrAmbiguousMimeType = errors.New("ambiguous mime type")
	ErrRemoteError       = errors.New("remote error")
	ErrIOError           = errors.New("io error")
)

// NotAuthorizedError reports a path whose first segment is not a registered
// root label.
type NotAuthorizedError struct {
	Label string
}

func (err *NotAuthorizedError) Error() string {
	return fmt.Sprintf("unknown shared drive '%s': %s", err.Label, ErrNotAuthorized.Error())
}

func (err *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// NotFoundError reports the first path segment that could not be resolved
// under its parent.
type NotFoundError struct {
	Segment string
	Path    Path
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("no such object '%s' in '%s': %s", err.Segment, err.Path, ErrNotFound.Error())
}

func (err *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AlreadyExistsError reports a protected write against an existing object.
type AlreadyExistsError struct {
	Path Path
}

func (err *AlreadyExistsError) Error() string {
	return fmt.Sprintf("'%s' already exists and overwrite is disabled: %s", err.Path, ErrAlreadyExists.Error())
}

func (err *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

func newRemoteError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrRemoteError,
		msg:        msg,
		cause:      cause,
	}
}

func newIOError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrIOError,
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
