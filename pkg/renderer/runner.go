package renderer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Command is one renderer invocation.
type Command struct {
	// Path is the executable.
	Path string
	// Args excludes the executable itself.
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes a command and reports its exit status. A non-nil error
// means the command could not be run at all; a process that ran and failed
// returns its nonzero status with a nil error.
type Runner interface {
	Run(ctx context.Context, cmd Command) (int, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cmd Command) (int, error)

func (f RunnerFunc) Run(ctx context.Context, cmd Command) (int, error) {
	return f(ctx, cmd)
}

// ExecRunner runs commands as child processes and waits for them.
type ExecRunner struct {
	// Dir is the working directory of the child, empty for the current one.
	Dir string
}

func (r ExecRunner) Run(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = r.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return exitErr.ExitCode(), ctxErr
		}
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("renderer: run %s: %w", c.Path, err)
}
