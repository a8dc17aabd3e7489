// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including a command that
	// was handled but reported nothing.
	Success = 0

	// UserError indicates bad arguments, an invalid config file or an
	// utterance whose reply reported a failure.
	UserError = 1

	// AuthError indicates missing OAuth credentials or an expired login.
	AuthError = 2

	// BackendError indicates a storage, API or network failure.
	BackendError = 3
)
