// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/toolenv/cliout"
	"github.com/jongio/toolenv/env"
	"github.com/jongio/toolenv/resolver"
)

func newEnvCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "env [executable]",
		Short: "Print the PATH an executable would be launched with",
		Long: `Print the PATH toolenv would give the executable: the current PATH with
the executable's directory (and its script interpreter's directory, when
needed) prepended once, duplicates removed. Without an argument the
preferred installation of the tool is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				found, err := opts.which(cmd.Context(), opts.cfg.Cache.Enabled)
				if err != nil {
					return err
				}
				path = found
			}

			spec, err := resolver.BuildProcessExecutionEnvironment(path)
			if err != nil {
				return err
			}

			if !all {
				return cliout.Print(map[string]string{"path": spec.Path, "PATH": spec.PATH()}, func() {
					fmt.Println(spec.PATH())
				})
			}
			return cliout.Print(spec, func() {
				for _, kv := range env.MapToSlice(env.SliceToMap(spec.Env)) {
					fmt.Println(kv)
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print the full environment instead of PATH only")
	return cmd
}
