package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *HookError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *HookError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// RevUnresolved creates an error for a repository whose revision could not
// be resolved against the remote.
func RevUnresolved(repo, rev string) *HookError {
	return New(ErrCodeRevUnresolved, fmt.Sprintf("revision '%s' could not be resolved for %s", rev, repo)).
		WithDetail("repo", repo).
		WithDetail("rev", rev)
}

// GitCommandFailed creates a git command failure error
func GitCommandFailed(args []string, err error) *HookError {
	return Wrap(err, ErrCodeGitCommand, fmt.Sprintf("git %v failed", args)).
		WithDetail("args", args)
}

// HookNotOwned creates an error for a git hook file this tool did not write
func HookNotOwned(path string) *HookError {
	return New(ErrCodeHookNotOwned, fmt.Sprintf("existing hook at %s was not installed by hookctl; refusing to overwrite", path)).
		WithDetail("path", path)
}
