package cargo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner runs one invocation to completion.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// ExecRunner runs invocations as child processes, streaming their output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	fd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	fd.Dir = inv.Dir
	fd.Env = append(os.Environ(), inv.Env...)
	fd.Stdout = r.Stdout
	fd.Stderr = r.Stderr
	if err := fd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("start %s: %w", inv.Name, err)
	}
	return nil
}
