package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"tasks-cli/internal/cli"
	"tasks-cli/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	root := cli.NewRootCommand(cfg)
	defer root.Close()

	// Ctrl+C unwinds watch mode cleanly instead of killing the process
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return root.ExecuteContext(ctx)
}
