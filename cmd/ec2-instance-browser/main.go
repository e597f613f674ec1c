package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/ec2-instance-browser/internal/cli"
)

func main() {
	// Cancel in-flight queries on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
