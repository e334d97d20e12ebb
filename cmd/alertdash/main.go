// Package main provides the alertdash command line: the dashboard server and
// a terminal view of the same alert list.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
