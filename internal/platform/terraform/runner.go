// Package terraform shells out to the terraform CLI.
//
// Every invocation is captured as a [CommandResult] with the exit code and
// both output streams. Callers branch on exit codes and typed errors, never
// on output text.
package terraform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// BinaryName is the terraform executable looked up in PATH.
const BinaryName = "terraform"

// CommandResult captures one terraform invocation.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitError reports a terraform subcommand that exited non-zero. The full
// result is carried so callers can surface terraform's own diagnostics.
type ExitError struct {
	Subcommand string
	Result     CommandResult
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("terraform %s exited with code %d", e.Subcommand, e.Result.ExitCode)
}

// Runner drives the terraform CLI.
type Runner interface {
	// Version reports the installed terraform version.
	Version(ctx context.Context) (CommandResult, error)

	// Init initializes the working directory.
	Init(ctx context.Context) (CommandResult, error)

	// Plan computes the execution plan.
	Plan(ctx context.Context) (CommandResult, error)

	// Apply applies the configuration without interactive approval.
	Apply(ctx context.Context) (CommandResult, error)
}

// CLI runs the real terraform binary in a fixed working directory.
type CLI struct {
	// Binary overrides the executable, empty means BinaryName from PATH.
	Binary string

	// Dir is the working directory for all subcommands. It should be the
	// directory holding the generated source file.
	Dir string
}

// NewCLI returns a CLI rooted at dir.
func NewCLI(dir string) *CLI {
	return &CLI{Dir: dir}
}

func (c *CLI) Version(ctx context.Context) (CommandResult, error) {
	return c.run(ctx, "version")
}

func (c *CLI) Init(ctx context.Context) (CommandResult, error) {
	return c.run(ctx, "init")
}

func (c *CLI) Plan(ctx context.Context) (CommandResult, error) {
	return c.run(ctx, "plan")
}

func (c *CLI) Apply(ctx context.Context) (CommandResult, error) {
	return c.run(ctx, "apply", "-auto-approve")
}

func (c *CLI) run(ctx context.Context, args ...string) (CommandResult, error) {
	binary := c.Binary
	if binary == "" {
		binary = BinaryName
	}

	// #nosec G204 - binary and args come from fixed subcommand definitions
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, &ExitError{Subcommand: args[0], Result: result}
		}
		return result, fmt.Errorf("failed to run terraform %s: %w", args[0], err)
	}
	return result, nil
}
