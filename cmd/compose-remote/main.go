// Package main is the entry point for compose-remote, the operator client
// of the Mesos Compose framework.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/pandeptwidyaop/compose-remote/internal/cli"
	"github.com/pandeptwidyaop/compose-remote/internal/config"
	"github.com/pandeptwidyaop/compose-remote/internal/dispatch"
	"github.com/pandeptwidyaop/compose-remote/internal/handlers"
	"github.com/pandeptwidyaop/compose-remote/internal/render"
	"github.com/pandeptwidyaop/compose-remote/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	globals, rest, err := cli.ParseGlobals(args, config.DefaultPath())
	helpRequested := errors.Is(err, pflag.ErrHelp)
	if err != nil && !helpRequested {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	if globals.Version {
		fmt.Fprint(stdout, version.String())
		return 0
	}

	logger := cli.NewLogger(stderr, globals.Verbose)
	h := handlers.New(handlers.Deps{
		ConfigPath:    globals.ConfigPath,
		MasterAddress: globals.Master,
		Dispatcher:    dispatch.New(logger),
		Printer:       render.NewPrinter(stdout),
		Log:           logger,
	})

	root := rootCommand(ctx, h, &globals)
	root.Stderr = stderr

	if helpRequested {
		root.PrintHelp(stderr)
		return 0
	}

	if err := root.Execute(rest); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			return coder.ExitCode()
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
