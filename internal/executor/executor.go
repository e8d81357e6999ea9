// Package executor runs commands of the wrapped tool and captures their
// textual output.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"

	"termlink/pkg/logging"
)

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// Options configures an Executor.
type Options struct {
	// Path is the executable to run.
	Path string
	// Args are prepended to every command's arguments.
	Args []string
	// Timeout bounds a single run. Zero means no limit.
	Timeout time.Duration
	// WorkDir is the working directory of the process. Empty inherits ours.
	WorkDir string
	// Env holds extra KEY=VALUE pairs added to the inherited environment.
	Env []string
}

// Executor runs one program with argument strings typed by the user.
type Executor struct {
	path    string
	args    []string
	timeout time.Duration
	workDir string
	env     []string
}

// New creates an Executor for opts.Path.
func New(opts Options) *Executor {
	return &Executor{
		path:    opts.Path,
		args:    append([]string(nil), opts.Args...),
		timeout: opts.Timeout,
		workDir: opts.WorkDir,
		env:     append([]string(nil), opts.Env...),
	}
}

// Path returns the executable the executor runs.
func (e *Executor) Path() string {
	return e.path
}

// Run executes the program with the arguments in command and returns what
// it printed. A successful run yields stdout. A failed run yields stdout
// followed by stderr, plus the launch error when the program could not be
// started. Run never returns an error: failures are part of the output the
// user sees.
func (e *Executor) Run(ctx context.Context, command string) string {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := append(append([]string(nil), e.args...), Split(command)...)
	logging.InfoCtx(ctx, "Executor", "> %s", command)

	cmd := execCommandContext(ctx, e.path, args...)
	if e.workDir != "" {
		cmd.Dir = e.workDir
	}
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err == nil {
		logging.DebugCtx(ctx, "Executor", "Command finished in %s:\n%s", elapsed, stdout.String())
		return stdout.String()
	}

	out := stdout.String() + stderr.String()

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		out += fmt.Sprintf("command timed out after %s\n", e.timeout)
	case !errors.As(err, &exitErr):
		out += err.Error() + "\n"
	}

	logging.WarnCtx(ctx, "Executor", "Command %q failed after %s: %v", command, elapsed, err)
	logging.DebugCtx(ctx, "Executor", "Command output:\n%s", out)
	return out
}

// Split breaks a command string into arguments using shell quoting rules.
// Malformed quoting falls back to splitting on whitespace.
func Split(command string) []string {
	args, err := shlex.Split(command)
	if err != nil {
		logging.Debug("Executor", "Falling back to whitespace split for %q: %v", command, err)
		return strings.Fields(command)
	}
	return args
}
