package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"textdiff/internal/cli"
	"textdiff/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			cli.Usage(os.Stdout)
			return 0
		}
		fmt.Fprintf(os.Stderr, "textdiff: %v\n\n", err)
		cli.Usage(os.Stderr)
		return 2
	}

	logger, closeLog, err := logging.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Run(ctx, args, cli.Env{Stdin: os.Stdin, Stdout: os.Stdout, Logger: logger}); err != nil {
		logger.Error("textdiff failed", "error", err)
		fmt.Fprintf(os.Stderr, "textdiff: %v\n", err)
		var usage *cli.UsageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	return 0
}
