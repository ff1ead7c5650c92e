package command

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default command execution timeout
	DefaultTimeout = 2 * time.Minute

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 10 * time.Minute
)

// SafeBuilder provides secure command execution with validation
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
		executor:       exec,
	}
}

// makeDefaultValidators returns the default set of validators
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"gitURL": validateGitURL,
		"gitRef": validateGitRef,
	}
}

var gitURLRegex = regexp.MustCompile(`^(https?://|git://|ssh://|git@)[^\s]+$`)

// validateGitURL ensures repository URLs are safe to hand to git
func validateGitURL(url string) error {
	if url == "" {
		return fmt.Errorf("git URL cannot be empty")
	}

	if strings.HasPrefix(url, "-") {
		return fmt.Errorf("git URL cannot start with '-': %s", url)
	}

	// Prevent command injection via shell metacharacters
	if strings.ContainsAny(url, ";|&$`'\"") {
		return fmt.Errorf("git URL contains invalid characters: %s", url)
	}

	if !gitURLRegex.MatchString(url) {
		return fmt.Errorf("invalid git URL: %s", url)
	}

	return nil
}

// validateGitRef ensures git references are safe
func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git ref cannot be empty")
	}

	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("git ref cannot start with '-': %s", ref)
	}

	// Git refs: alphanumeric, slashes, hyphens, underscores, dots
	validRef := regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)
	if !validRef.MatchString(ref) {
		return fmt.Errorf("invalid git ref: %s", ref)
	}

	return nil
}

// Command represents a safe command configuration
type Command struct {
	ctx      context.Context
	cancel   context.CancelFunc
	name     string
	args     []string
	timeout  time.Duration
	executor Executor
}

// Build creates a new command with validation. Callers must Release the
// command once the process has finished to free its timeout context.
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	// Validate command name
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, sb.defaultTimeout)

	return &Command{
		ctx:      timeoutCtx,
		cancel:   cancel,
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// WithTimeout sets a custom timeout for the command, replacing the deadline
// Build applied.
func (c *Command) WithTimeout(timeout time.Duration) *Command {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}

	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = context.WithTimeout(context.Background(), timeout)
	c.timeout = timeout
	return c
}

// Release frees the command's timeout context. Safe to call more than once.
func (c *Command) Release() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// Exec creates and returns an exec.Cmd
func (c *Command) Exec() *exec.Cmd {
	return c.executor.CommandContext(c.ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
}
