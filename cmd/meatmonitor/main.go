// Package main is the entry point of the meatmonitor CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/rshade/meatmonitor/internal/cli"
	"github.com/rshade/meatmonitor/pkg/version"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the root command with args.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SilenceErrors = true
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
