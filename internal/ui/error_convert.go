package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"os/exec"
	"strings"

	"github.com/jatinmourya/ng-angular-setup/clierror"
)

// errorMatcher detects one class of internal error and converts it into a
// presentable form.
type errorMatcher struct {
	match   func(err error) bool
	convert func(err error) clierror.Error
}

// Ordered list, more specific matchers first.
var errorMatchers = []errorMatcher{
	// Missing executables, the most common failure for a tool that
	// shells out to node, npm and git.
	{
		match: func(err error) bool {
			return errors.Is(err, exec.ErrNotFound)
		},
		convert: func(err error) clierror.Error {
			return clierror.Wrap(err).
				WithCode(clierror.ErrCodeEnvironmentCheckFailed).
				WithHuman("A required command is not installed or not on your PATH.").
				WithHelp("Run 'ng-setup doctor' to see which tools are missing.")
		},
	},
	{
		match: func(err error) bool {
			return errors.Is(err, fs.ErrNotExist)
		},
		convert: func(err error) clierror.Error {
			human := "File or directory not found"
			if path := pathFromError(err); path != "" {
				human = fmt.Sprintf("File or directory not found: %s", path)
			}

			return clierror.Wrap(err).
				WithCode(clierror.ErrCodeNotFound).
				WithHuman(human).
				WithHelp("Check that the path exists")
		},
	},
	{
		match: func(err error) bool {
			return errors.Is(err, fs.ErrPermission)
		},
		convert: func(err error) clierror.Error {
			human := "Permission denied"
			if path := pathFromError(err); path != "" {
				human = fmt.Sprintf("Permission denied: %s", path)
			}

			return clierror.Wrap(err).
				WithCode(clierror.ErrCodePermissionDenied).
				WithHuman(human).
				WithHelp("Check the directory permissions")
		},
	},
	{
		match: func(err error) bool {
			var exitErr *exec.ExitError
			return errors.As(err, &exitErr)
		},
		convert: func(err error) clierror.Error {
			var exitErr *exec.ExitError
			errors.As(err, &exitErr)

			return clierror.Wrap(err).
				WithCode(clierror.ErrCodeInstallerFailed).
				WithHuman(fmt.Sprintf("Command failed with exit code %d", exitErr.ExitCode())).
				WithHelp("Check the command output above for the cause")
		},
	},
	// Timeouts before generic network errors, network timeouts match both.
	{
		match: func(err error) bool {
			return errors.Is(err, context.DeadlineExceeded)
		},
		convert: func(err error) clierror.Error {
			return clierror.Wrap(err).
				WithCode(clierror.ErrCodeTimeout).
				WithHuman("Operation timed out").
				WithHelp("Try again, or check your network connection")
		},
	},
	{
		match: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		convert: func(err error) clierror.Error {
			return clierror.Wrap(err).
				WithCode(clierror.ErrCodeCanceled).
				WithHuman("Operation was canceled")
		},
	},
	{
		match: func(err error) bool {
			var netErr net.Error
			if errors.As(err, &netErr) {
				return true
			}

			msg := err.Error()
			return strings.Contains(msg, "connection refused") ||
				strings.Contains(msg, "no such host") ||
				strings.Contains(msg, "network is unreachable")
		},
		convert: func(err error) clierror.Error {
			return clierror.Wrap(err).
				WithCode(clierror.ErrCodeNetwork).
				WithHuman("Network error while talking to the npm registry").
				WithHelp("Check your internet connection; the registry may be temporarily unavailable")
		},
	},
}

// convertError turns an arbitrary internal error into a presentable one by
// inspecting the error chain for known causes. Falls back to the root
// cause message so the user is never shown a full wrap chain.
func convertError(err error) clierror.Error {
	if err == nil {
		return nil
	}

	if presentable, ok := clierror.From(err); ok {
		return presentable
	}

	for _, matcher := range errorMatchers {
		if matcher.match(err) {
			return matcher.convert(err)
		}
	}

	return clierror.Wrap(err).
		WithHuman(rootCause(err)).
		WithHelp("Re-run with --debug for details")
}

// rootCause walks to the innermost error in the chain.
func rootCause(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}

		err = unwrapped
	}
}

func pathFromError(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Old
	}

	return ""
}
