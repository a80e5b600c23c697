package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/pandeptwidyaop/compose-remote/internal/cli"
	"github.com/pandeptwidyaop/compose-remote/internal/handlers"
)

func rootCommand(ctx context.Context, h *handlers.Handlers, globals *cli.Globals) *cli.Command {
	return &cli.Command{
		Name:    "compose-remote",
		Summary: "Interacts with the Mesos Compose framework",
		Usage:   "[global flags] <command>",
		Flags: func() *pflag.FlagSet {
			return cli.GlobalFlags(globals, globals.ConfigPath)
		},
		Subcommands: []*cli.Command{
			{
				Name:    "version",
				Summary: "Get the API versions served by the framework",
				Usage:   "<framework>",
				Args:    1,
				Run: func(args []string) error {
					return h.Version(ctx, args[0])
				},
			},
			{
				Name:    "info",
				Summary: "Show the address and ID of the framework",
				Usage:   "<framework>",
				Args:    1,
				Run: func(args []string) error {
					return h.Info(ctx, args[0])
				},
			},
			listCommand(ctx, h),
			{
				Name:    "launch",
				Summary: "Launch a workload from a compose file",
				Usage:   "<framework> <project> <compose-file>",
				Args:    3,
				Run: func(args []string) error {
					return h.Launch(ctx, handlers.ComposeParams{Framework: args[0], Project: args[1], ComposeFile: args[2]})
				},
			},
			{
				Name:    "update",
				Summary: "Update a running workload from a compose file",
				Usage:   "<framework> <project> <compose-file>",
				Args:    3,
				Run: func(args []string) error {
					return h.Update(ctx, handlers.ComposeParams{Framework: args[0], Project: args[1], ComposeFile: args[2]})
				},
			},
			{
				Name:    "kill",
				Summary: "Kill a task, or every task of a service given as <prefix>:<project>:<service>",
				Usage:   "<framework> <task>",
				Args:    2,
				Run: func(args []string) error {
					return h.Kill(ctx, handlers.TaskParams{Framework: args[0], Task: args[1]})
				},
			},
			{
				Name:    "restart",
				Summary: "Restart a task, or every task of a service given as <prefix>:<project>:<service>",
				Usage:   "<framework> <task>",
				Args:    2,
				Run: func(args []string) error {
					return h.Restart(ctx, handlers.TaskParams{Framework: args[0], Task: args[1]})
				},
			},
			{
				Name:    "framework",
				Summary: "Control the framework's registration with Mesos",
				Subcommands: []*cli.Command{
					{
						Name:    "reregister",
						Summary: "Force the framework to register with Mesos again",
						Usage:   "<framework>",
						Args:    1,
						Run: func(args []string) error {
							return h.FrameworkReregister(ctx, args[0])
						},
					},
					{
						Name:    "suppress",
						Summary: "Suppress resource offers to the framework",
						Usage:   "<framework>",
						Args:    1,
						Run: func(args []string) error {
							return h.FrameworkSuppress(ctx, args[0])
						},
					},
				},
			},
		},
	}
}

func listCommand(ctx context.Context, h *handlers.Handlers) *cli.Command {
	var params handlers.ListParams
	return &cli.Command{
		Name:    "list",
		Summary: "List the tasks of the framework",
		Usage:   "<framework> [--all] [--json]",
		Args:    1,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.BoolVarP(&params.All, "all", "a", false, "include tasks that are not running")
			flagSet.BoolVar(&params.JSON, "json", false, "print the tasks as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			params.Framework = args[0]
			return h.List(ctx, params)
		},
	}
}
