package main

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"postgraph/internal/graph"
)

func newBatchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file|->",
		Short: "Run a JSON array of requests in order against one store",
		Long: "Run a JSON array of requests in order against one store, printing one JSON response per line.\n" +
			`Each request is {"operation": "...", "args": {...}, "select": "..."}.` + "\n\n" + operationsHelp(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := readRequests(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			a, err := root.load(cmd)
			if err != nil {
				return err
			}
			failed := 0
			for _, req := range requests {
				resp := a.dispatcher.Dispatch(cmd.Context(), req)
				if resp.Failed() {
					failed++
				}
				if err := writeResponse(cmd.OutOrStdout(), resp); err != nil {
					return err
				}
			}
			if err := root.finish(cmd, a); err != nil {
				return err
			}
			if failed > 0 {
				return errRequestFailed
			}
			return nil
		},
	}
}

func readRequests(stdin io.Reader, source string) ([]graph.Request, error) {
	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	var requests []graph.Request
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &requests); err != nil {
		return nil, fmt.Errorf("parse requests: %w", err)
	}
	return requests, nil
}

func writeResponse(w io.Writer, resp graph.Response) error {
	if _, err := resp.WriteTo(w); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
