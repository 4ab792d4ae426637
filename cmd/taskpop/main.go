// Package main is the entry point for the taskpop CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskpop/internal/cli"
	"taskpop/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// A nil factory opens the store named by the settings
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
