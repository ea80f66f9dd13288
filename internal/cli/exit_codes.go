package cli

import "github.com/thedocproject/thedoc/internal/errors"

// Exit codes for the thedoc CLI. The coarse taxonomy supports scripting and
// CI integration without overpromising precision.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitFailure indicates a runtime or repository failure.
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments or config.
	ExitInvalidArguments = 2
)

// exitCodeFor maps an error category to a process exit code.
func exitCodeFor(category errors.ErrorCategory) int {
	switch category {
	case errors.Argument, errors.Configuration:
		return ExitInvalidArguments
	default:
		return ExitFailure
	}
}
