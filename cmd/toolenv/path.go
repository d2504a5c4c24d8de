// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jongio/toolenv/cliout"
	"github.com/jongio/toolenv/pathset"
)

// pathResult is the JSON shape of the path command.
type pathResult struct {
	PATH    string   `json:"PATH"`
	Changed bool     `json:"changed"`
	Added   []string `json:"added"`
}

func newPathCmd(_ *rootOptions) *cobra.Command {
	var dedupe bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print PATH extended with common tool directories that exist",
		Long: `Print the current PATH with conventional bin directories (Homebrew,
~/.local/bin, ~/.npm-global/bin, ...) prepended when they exist and are
missing. Intended for shells started without a login profile:

  export PATH="$(toolenv path)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, _ := os.UserHomeDir()
			current := pathset.ProcessPATH()

			result := pathResult{PATH: current, Added: []string{}}
			if enhanced, ok := pathset.EnhanceForCommonLocations(current, pathset.CommonLocations(home)); ok {
				result.PATH = enhanced
				result.Changed = true
				for _, dir := range pathset.Split(enhanced) {
					if !pathset.ContainsDirectory(current, dir) {
						result.Added = append(result.Added, dir)
					}
				}
			} else if dedupe {
				result.PATH = pathset.Deduplicate(current)
				result.Changed = result.PATH != current
			}

			return cliout.Print(result, func() {
				fmt.Println(result.PATH)
			})
		},
	}
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "Remove duplicate PATH entries even when nothing is added")
	return cmd
}
