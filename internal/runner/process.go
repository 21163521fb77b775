package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ProcessExecutor runs invocations as child processes.
type ProcessExecutor struct {
	// Stdin, Stdout and Stderr can be set for testing; they default to the
	// process's own streams so tool output is not buffered.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Env overrides the child environment; nil inherits os.Environ().
	Env []string
}

// Run resolves the program on PATH, runs it in inv.Dir and waits for it.
func (p *ProcessExecutor) Run(ctx context.Context, inv Invocation) error {
	bin, err := exec.LookPath(inv.Program)
	if err != nil {
		return fmt.Errorf("%s is required but was not found: %w", inv.Program, err)
	}

	cmd := exec.CommandContext(ctx, bin, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = p.Env
	cmd.Stdin = p.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = p.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = p.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("running %s: %w", inv, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Invocation: inv, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("running %s: %w", inv, err)
	}
	return nil
}
