// Package errors wraps errors with stack traces and carries the exit code
// the CLI should use for them.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Errorf creates a new error and wraps it with the current stack trace.
func Errorf(message string, args ...any) error {
	return goerrors.Wrap(fmt.Errorf(message, args...), 1)
}

// New creates a new error with the stack trace of the caller.
func New(message string) error {
	return goerrors.Wrap(errors.New(message), 1)
}

// WithStackTrace wraps the given error in an Error type that contains the stack trace. If the given error already has a stack trace,
// it is used directly. If the given error is nil, return nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix is WithStackTrace with a formatted message prepended to the error text.
func WithStackTraceAndPrefix(err error, message string, args ...any) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// IsError returns true if actual is, or wraps, expected.
func IsError(actual error, expected error) bool {
	return goerrors.Is(actual, expected)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ErrorStack returns the error message followed by the recorded call stack.
func ErrorStack(err error) string {
	if err == nil {
		return ""
	}

	var goerr *goerrors.Error
	if errors.As(err, &goerr) {
		return goerr.ErrorStack()
	}
	return err.Error()
}

// ErrorWithExitCode tells the CLI which exit code to use for Err.
type ErrorWithExitCode struct {
	Err      error
	ExitCode int
}

func (err ErrorWithExitCode) Error() string {
	return err.Err.Error()
}

func (err ErrorWithExitCode) Unwrap() error {
	return err.Err
}

// ExitCode returns the exit code carried by err, or 1 for any other non-nil error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var withCode ErrorWithExitCode
	if errors.As(err, &withCode) {
		return withCode.ExitCode
	}
	return 1
}
