package engine

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one external command and returns its combined output.
// Adapters that shell out to an engine binary take a Runner so tests can
// capture the exact argv.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExitError carries a process exit status across the Runner boundary.
type ExitError struct {
	Code   int
	Output string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("exit status %d: %s", e.Code, e.Output)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode extracts the exit status from a Runner error, or -1 when the
// command never ran.
func ExitCode(err error) int {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return -1
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		var xe *exec.ExitError
		if errors.As(err, &xe) {
			return out, &ExitError{Code: xe.ExitCode(), Output: strings.TrimSpace(string(out)), Err: err}
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
