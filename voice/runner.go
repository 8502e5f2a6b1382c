package voice

import (
	"context"
	"os/exec"
)

// Runner starts host commands. ExecRunner is the real one; tests substitute
// a fake.
type Runner interface {
	// Run blocks until the command exits or ctx is cancelled.
	Run(ctx context.Context, name string, args ...string) error
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
