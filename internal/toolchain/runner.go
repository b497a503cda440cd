package toolchain

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

// Command describes a single child process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds extra KEY=VALUE pairs layered over the inherited environment.
	Env []string
}

// In returns a copy of c that runs in dir.
func (c Command) In(dir string) Command {
	c.Dir = dir
	return c
}

// String renders the argument list the way it is reported in errors,
// e.g. "create elysia my-app".
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Output captures the result of a finished child process.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status 0.
func (o *Output) Success() bool {
	return o.ExitCode == 0
}

// Runner spawns a command and waits for it to finish. A non-zero exit is
// reported through Output.ExitCode; the error return is reserved for spawn
// failures.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// ExecRunner runs commands as real child processes. Executables are resolved
// against Path and the child's PATH is set to the overlay value.
type ExecRunner struct {
	Path *SearchPath

	// Stdout and Stderr, when set, receive a live copy of the child's output.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns an ExecRunner bound to the given search path.
func NewExecRunner(path *SearchPath) *ExecRunner {
	return &ExecRunner{Path: path}
}

// Run executes cmd and blocks until it exits. No timeout is applied.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Output, error) {
	path := r.Path
	if path == nil {
		path = NewSearchPath()
	}

	bin, err := path.LookPath(cmd.Name)
	if err != nil {
		return nil, err
	}

	c := exec.CommandContext(ctx, bin, cmd.Args...)
	c.Dir = cmd.Dir
	env := path.Environ(os.Environ())
	for _, kv := range cmd.Env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env = setEnv(env, k, v)
		}
	}
	c.Env = env

	var stdoutBuf, stderrBuf bytes.Buffer
	c.Stdout = tee(&stdoutBuf, r.Stdout)
	c.Stderr = tee(&stderrBuf, r.Stderr)

	err = c.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("running %s %s: %w", cmd.Name, cmd, err)
	}

	return output, nil
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
