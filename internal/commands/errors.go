package commands

import (
	"errors"
	"fmt"
	"io"

	"taskcli/internal/api"
	"taskcli/internal/exitcode"
)

// reportError prints err and returns the matching exit code.
// A rejected session is an auth error; everything else from the backend is a
// backend error.
func reportError(errOut io.Writer, err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Unauthorized() {
			fmt.Fprintf(errOut, "error: %s (run: taskcli login)\n", apiErr.Message())
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: %s\n", apiErr.Message())
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// reportAuthError handles failures of signup and login, where a rejection
// means bad credentials rather than a stale session.
func reportAuthError(errOut io.Writer, err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(errOut, "error: %s\n", apiErr.Message())
		if apiErr.Kind == api.KindServerRejected && apiErr.StatusCode < 500 {
			return exitcode.AuthError
		}
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.AuthError
}

// reportRefError handles failures to turn a task reference into a task.
func reportRefError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskRefRequired) || errors.Is(err, ErrTaskOutOfRange) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return reportError(errOut, err)
}
