// Package clierror carries user presentable errors through the command
// layer. An internal error is wrapped once, close to where it happened,
// with a readable description and actionable help, so the terminal never
// shows a raw internal error string without context.
package clierror

import (
	"errors"
	"fmt"
)

// Error is implemented by errors that know how to present themselves to a
// terminal user, in addition to satisfying the standard error interface.
type Error interface {
	error

	// HumanError returns the readable description shown to the user.
	HumanError() string

	// Help returns actionable guidance, or an empty string when there is
	// nothing useful to suggest.
	Help() string

	// Code identifies the error category for logging and analytics.
	Code() string
}

type cliError struct {
	cause error
	msg   string
	human string
	help  string
	code  string
}

var _ Error = (*cliError)(nil)

// New starts a presentable error from a short internal message.
func New(msg string) *cliError {
	return &cliError{msg: msg}
}

// Wrap starts a presentable error around an underlying cause. The cause
// stays reachable through errors.Is and errors.As.
func Wrap(cause error) *cliError {
	return &cliError{cause: cause}
}

// Msg sets the short internal message prefixed to the cause in logs.
func (e *cliError) Msg(msg string) *cliError {
	e.msg = msg
	return e
}

// WithCode sets the error category code.
func (e *cliError) WithCode(code string) *cliError {
	e.code = code
	return e
}

// WithHuman sets the readable description shown to the user.
func (e *cliError) WithHuman(human string) *cliError {
	e.human = human
	return e
}

// WithHelp sets actionable guidance shown below the description.
func (e *cliError) WithHelp(help string) *cliError {
	e.help = help
	return e
}

func (e *cliError) Error() string {
	switch {
	case e.msg != "" && e.cause != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	case e.cause != nil:
		return e.cause.Error()
	case e.msg != "":
		return e.msg
	default:
		return "unknown error"
	}
}

// HumanError returns the readable description, falling back to the
// internal error string when none was set.
func (e *cliError) HumanError() string {
	if e.human == "" {
		return e.Error()
	}

	return e.human
}

func (e *cliError) Help() string {
	return e.help
}

func (e *cliError) Code() string {
	if e.code == "" {
		return ErrCodeUnknown
	}

	return e.code
}

// Unwrap exposes the wrapped cause to the errors package.
func (e *cliError) Unwrap() error {
	return e.cause
}

// From extracts a presentable error from anywhere in err's chain.
func From(err error) (Error, bool) {
	if err == nil {
		return nil, false
	}

	var wrapped *cliError
	if errors.As(err, &wrapped) {
		return wrapped, true
	}

	var presentable Error
	if errors.As(err, &presentable) {
		return presentable, true
	}

	return nil, false
}
