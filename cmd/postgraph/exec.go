package main

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"postgraph/internal/graph"
)

type execOptions struct {
	args      []string
	argsJSON  string
	selection string
}

func newExecCmd(root *rootOptions) *cobra.Command {
	opts := &execOptions{}
	cmd := &cobra.Command{
		Use:   "exec <operation>",
		Short: "Run one operation and print its JSON response",
		Long:  "Run one operation and print its JSON response.\n\n" + operationsHelp(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(args[0])
			if err != nil {
				return err
			}
			a, err := root.load(cmd)
			if err != nil {
				return err
			}
			resp := a.dispatcher.Dispatch(cmd.Context(), req)
			if err := writeResponse(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if err := root.finish(cmd, a); err != nil {
				return err
			}
			if resp.Failed() {
				return errRequestFailed
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&opts.args, "arg", nil, "operation argument as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.argsJSON, "args-json", "", "operation arguments as a JSON object")
	cmd.Flags().StringVar(&opts.selection, "select", "", "fields to return, e.g. 'id name posts { id title }'")
	return cmd
}

// request merges --args-json with --arg pairs. Pairs win on conflict and are
// passed as strings; the dispatcher converts them to the declared types.
func (o *execOptions) request(operation string) (graph.Request, error) {
	args := graph.Args{}
	if strings.TrimSpace(o.argsJSON) != "" {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(o.argsJSON, &args); err != nil {
			return graph.Request{}, fmt.Errorf("parse --args-json: %w", err)
		}
	}
	for _, pair := range o.args {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return graph.Request{}, fmt.Errorf("invalid --arg %q: expected key=value", pair)
		}
		args[strings.TrimSpace(key)] = value
	}
	return graph.Request{Operation: operation, Args: args, Selection: o.selection}, nil
}
