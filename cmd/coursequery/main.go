// Command coursequery runs named queries against a course catalog.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/coursequery/errors"
)

func main() {
	root, a := newRootCommand(os.Stdout, os.Stderr)
	if err := a.execute(context.Background(), root); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps evaluation failures to 2 and everything else to 1.
func exitCode(err error) int {
	if errors.IsEvaluationCode(errors.CodeOf(err)) {
		return 2
	}
	return 1
}
