package util

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Run returns the command's stdout. Stderr is kept apart and only reported in the error.
func Run(ctx context.Context, cwd string, name string, args ...string) (string, error) {
	return run(command(ctx, cwd, name, args...))
}

func command(ctx context.Context, cwd, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	return cmd
}

func run(cmd *exec.Cmd) (string, error) {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", &CommandError{Name: cmd.Args[0], Args: cmd.Args[1:], Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return string(out), nil
}

// CommandError reports a failed external command.
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed: %s %s: %v (%s)", e.Name, strings.Join(e.Args, " "), e.Err, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
