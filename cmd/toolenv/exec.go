// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"errors"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/jongio/toolenv/cmdutil"
	"github.com/jongio/toolenv/resolver"
)

// exitError carries a child's exit status through cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return "tool exited with a non-zero status"
}

func newExecCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [-- args...]",
		Short: "Run the preferred installation with its launch environment",
		Example: `  toolenv exec -- --version
  toolenv --tool node exec -- -e 'console.log(process.version)'`,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.which(cmd.Context(), opts.cfg.Cache.Enabled)
			if err != nil {
				return err
			}
			spec, err := resolver.BuildProcessExecutionEnvironment(path)
			if err != nil {
				return err
			}

			log.Debug("launching", "path", spec.Path, "args", args)
			err = cmdutil.RunWithEnv(cmd.Context(), spec.Path, args, "", spec.Env)
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return &exitError{code: exitErr.ExitCode()}
			}
			return err
		},
	}
}

// exitCode maps an Execute error to a process exit status.
func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) && e.code > 0 {
		return e.code
	}
	if err != nil {
		return 1
	}
	return 0
}
