// Command postgraph runs users/posts/comments operations against an
// in-memory store, one request at a time.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errRequestFailed) {
			fmt.Fprintf(errOut, "postgraph: %v\n", err)
		}
		return 1
	}
	return 0
}
