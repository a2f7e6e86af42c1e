// Package main is the entry point for tripctl, the trip planner CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkordes/tripplanner/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
