package toolchain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultTool is the executable name of the external tool.
const DefaultTool = "bun"

// ErrNotAvailable is returned by Probe when the tool cannot be spawned or
// exits with a non-zero status. The two cases are deliberately not told apart.
var ErrNotAvailable = errors.New("tool not available")

// Toolchain builds and runs subcommands of the external tool.
type Toolchain struct {
	tool   string
	runner Runner
}

// New returns a Toolchain for the named executable. An empty name selects
// DefaultTool.
func New(tool string, runner Runner) *Toolchain {
	if tool == "" {
		tool = DefaultTool
	}
	return &Toolchain{tool: tool, runner: runner}
}

// Tool returns the executable name.
func (t *Toolchain) Tool() string {
	return t.tool
}

// Command builds a subcommand invocation of the tool.
func (t *Toolchain) Command(args ...string) Command {
	return Command{Name: t.tool, Args: args}
}

// Run spawns cmd through the toolchain's runner.
func (t *Toolchain) Run(ctx context.Context, cmd Command) (*Output, error) {
	return t.runner.Run(ctx, cmd)
}

// Probe runs "<tool> --version". On success it returns the trimmed version
// output; any failure is reported as ErrNotAvailable wrapping the cause.
func (t *Toolchain) Probe(ctx context.Context) (string, error) {
	out, err := t.runner.Run(ctx, t.Command("--version"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotAvailable, err)
	}
	if !out.Success() {
		return "", fmt.Errorf("%w: %s --version exited with status %d", ErrNotAvailable, t.tool, out.ExitCode)
	}
	return strings.TrimSpace(out.Stdout), nil
}
