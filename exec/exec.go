package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultShell is the interpreter used for command fragments.
const DefaultShell = "sh"

// Executor runs external commands
type Executor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	env    []string
	dir    string

	// For mocking in tests
	commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// Options configures command execution
type Options struct {
	Stdin  io.Reader // Usually the controlling terminal
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // Additional environment variables
	Dir    string   // Working directory
}

// NewExecutor creates an executor with sensible defaults
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}

	e := &Executor{
		stdin:       opts.Stdin,
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		commandFunc: exec.CommandContext,
	}
	if e.stdin == nil {
		e.stdin = os.Stdin
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	return e
}

// Run executes a command and waits for it to exit.
// A non-zero exit status is returned as an error.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	return e.run(ctx, e.stdout, name, args...)
}

// Output executes a command and returns what it wrote to stdout.
func (e *Executor) Output(ctx context.Context, name string, args ...string) (string, error) {
	var buf bytes.Buffer
	if err := e.run(ctx, &buf, name, args...); err != nil {
		return buf.String(), err
	}
	return buf.String(), nil
}

// Shell runs a command fragment through sh -c.
func (e *Executor) Shell(ctx context.Context, script string) error {
	return e.Run(ctx, DefaultShell, "-c", script)
}

// ShellOutput runs a command fragment through sh -c and returns its stdout.
func (e *Executor) ShellOutput(ctx context.Context, script string) (string, error) {
	return e.Output(ctx, DefaultShell, "-c", script)
}

func (e *Executor) run(ctx context.Context, stdout io.Writer, name string, args ...string) error {
	cmd := e.commandFunc(ctx, name, args...)

	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}

	cmd.Stdin = e.stdin
	cmd.Stdout = stdout
	cmd.Stderr = e.stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
		}
		if isCommandNotFound(err) {
			return enhanceError(err, name)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// ExitCode extracts the exit status from an error returned by Run.
// It returns 0 for nil and -1 when the process never ran.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// String renders a command line for logs.
func String(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "executable file not found") ||
		strings.Contains(err.Error(), "command not found")
}

// enhanceError adds helpful message for missing commands
func enhanceError(err error, cmd string) error {
	return fmt.Errorf("%w\n💡 Command '%s' not found. Please install it and try again", err, cmd)
}
