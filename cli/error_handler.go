package cli

import (
	"fmt"
	"os"

	"github.com/hooktools/core/errors"
)

// ErrorHandler provides user-friendly error messages.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle prints a user-friendly message for the error and returns it
// unchanged so callers can still propagate the exit status.
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No .pre-commit-config.yaml found. Run 'hookctl init' to create one.\n")
		return err

	case errors.ErrCodeConfigValidation, errors.ErrCodeSchemaValidation:
		fmt.Fprintf(os.Stderr, "❌ Configuration is not valid:\n%v\n", err)
		return err

	case errors.ErrCodeGitNotInstalled:
		fmt.Fprintf(os.Stderr, "❌ git is not installed or not on PATH.\n")
		return err

	case errors.ErrCodeGitNotARepo:
		fmt.Fprintf(os.Stderr, "❌ Not inside a git repository.\n")
		return err

	case errors.ErrCodeHookNotOwned:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "Remove the hook manually if you want hookctl to manage it.\n")
		return err

	case errors.ErrCodeRevUnresolved:
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(os.Stderr, "❌ Could not resolve tags for %s\n", hookErr.Details["repo"])
			fmt.Fprintf(os.Stderr, "Check the repository URL and your network connection.\n")
		} else {
			fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if hookErr, ok := err.(*errors.HookError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", hookErr.ToJSON())
			}
		}
		return err
	}
}
