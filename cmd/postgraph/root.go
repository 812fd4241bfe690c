package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"postgraph/internal/config"
	"postgraph/internal/graph"
)

// errRequestFailed is returned after a failed response was already printed.
var errRequestFailed = errors.New("request failed")

type rootOptions struct {
	configPath   string
	seed         bool
	trace        bool
	printMetrics bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "postgraph [command] [flags]",
		Short:         "Query and mutate an in-memory users/posts/comments graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	flags.BoolVar(&opts.seed, "seed", false, "load the demo dataset before running")
	flags.BoolVar(&opts.trace, "trace", false, "write one JSON trace line per operation to stderr")
	flags.BoolVar(&opts.printMetrics, "print-metrics", false, "write collected metrics to stderr on exit")

	root.AddCommand(newExecCmd(opts), newBatchCmd(opts))
	return root
}

// load builds the application from config, env and flags.
func (o *rootOptions) load(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed.Demo = o.seed
	}
	return newApp(cfg, cmd.ErrOrStderr(), o.trace)
}

func (o *rootOptions) finish(cmd *cobra.Command, a *app) error {
	if !o.printMetrics {
		return nil
	}
	return a.writeMetrics(cmd.ErrOrStderr())
}

func operationsHelp() string {
	return fmt.Sprintf("operations: %s", strings.Join(graph.Operations(), ", "))
}
