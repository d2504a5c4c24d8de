// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jongio/toolenv/cliout"
	"github.com/jongio/toolenv/resolver"
)

// discoverResult is the JSON shape of the discover command.
type discoverResult struct {
	Tool          string                  `json:"tool"`
	Installations []resolver.Installation `json:"installations"`
	Selected      *resolver.Installation  `json:"selected,omitempty"`
}

func newDiscoverCmd(opts *rootOptions) *cobra.Command {
	var showLocations bool

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List every installation of the tool in probe order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := opts.resolver()
			if showLocations {
				return printLocations(r.Locations())
			}

			installs := r.Discover(cmd.Context())
			result := discoverResult{Tool: r.Tool(), Installations: installs}
			selected, err := resolver.Select(installs)
			if err == nil {
				result.Selected = &selected
			} else if !errors.Is(err, resolver.ErrNotFound) {
				return err
			}
			if result.Installations == nil {
				result.Installations = []resolver.Installation{}
			}

			return cliout.Print(result, func() {
				if result.Selected == nil {
					cliout.Warning("No installation of %s found", result.Tool)
					cliout.Hint("Install it, or add its directory with --extra-dir")
					return
				}

				rows := make([]cliout.TableRow, 0, len(installs))
				for _, inst := range installs {
					marker := ""
					if inst.Path == selected.Path {
						marker = "*"
					}
					rows = append(rows, cliout.TableRow{
						"":        marker,
						"Path":    inst.Path,
						"Version": inst.VersionString(),
						"Kind":    inst.Kind.String(),
					})
				}
				cliout.Header("Installations of " + result.Tool)
				cliout.Table([]string{"", "Path", "Version", "Kind"}, rows)
				cliout.Success("Selected %s", cliout.Highlight("%s", selected.Path))
			})
		},
	}
	cmd.Flags().BoolVar(&showLocations, "locations", false, "List probed directories instead of installations")
	return cmd
}

func printLocations(locs []resolver.Location) error {
	return cliout.Print(locs, func() {
		rows := make([]cliout.TableRow, 0, len(locs))
		for _, loc := range locs {
			rows = append(rows, cliout.TableRow{"Directory": loc.Dir, "Kind": loc.Kind.String()})
		}
		cliout.Table([]string{"Directory", "Kind"}, rows)
	})
}
