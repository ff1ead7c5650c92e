package command

import (
	"context"
	"os/exec"
)

// Executor turns a built Command into an exec.Cmd. Every command this tool
// runs carries a timeout context, so the seam is context-aware only; tests
// substitute an Executor to redirect git invocations at a fixture instead.
type Executor interface {
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor runs commands through os/exec.
type RealExecutor struct{}

func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}
