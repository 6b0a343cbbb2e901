package util

import (
	"context"
	"strings"
)

// RunWithStdin is Run with stdin fed from a string, as clipboard commands need.
func RunWithStdin(ctx context.Context, cwd, stdin, name string, args ...string) (string, error) {
	cmd := command(ctx, cwd, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return run(cmd)
}
