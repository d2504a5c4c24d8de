// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Command toolenv locates installations of a command-line tool and shows the
// environment toolenv would launch it with.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit status.
func run(ctx context.Context, args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	var exitErr *exitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return exitCode(err)
}
