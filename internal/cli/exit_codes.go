package cli

// Exit codes for the changeset CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitError indicates a general command failure
	ExitError = 1

	// ExitUserAbort indicates the user explicitly declined to continue
	// (for example refusing a first-major-release confirmation)
	ExitUserAbort = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3
)
