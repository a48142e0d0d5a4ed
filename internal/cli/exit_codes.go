package cli

import (
	stderrors "errors"
	"fmt"

	clierrors "github.com/ariel-frischer/tagnotes/internal/errors"
)

// Exit codes for the tagnotes CLI.
// They let scripts and CI jobs tell failure kinds apart.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitCheckFailed indicates 'tagnotes check' found problems
	ExitCheckFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfig indicates invalid or unusable configuration
	ExitConfig = 4

	// ExitRepository indicates the git history could not be read
	ExitRepository = 5

	// ExitOutput indicates a changelog document could not be read or written
	ExitOutput = 6
)

// ExitError carries an exit code without a message. It is returned after
// the command already reported the problem itself.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfig
		case clierrors.Repository:
			return ExitRepository
		case clierrors.Output:
			return ExitOutput
		}
	}

	// Unknown flags, wrong argument counts and other cobra errors.
	return ExitInvalidArguments
}
