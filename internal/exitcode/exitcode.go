// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid task reference, bad config).
	UserError = 1

	// AuthError indicates the session is missing, rejected, or could not be stored.
	AuthError = 2

	// BackendError indicates a server rejection, a network failure, or a request that could not be built.
	BackendError = 3
)
