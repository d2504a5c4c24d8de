// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/toolenv/cache"
	"github.com/jongio/toolenv/cliout"
	"github.com/jongio/toolenv/config"
)

func newWhichCmd(opts *rootOptions) *cobra.Command {
	var useCache bool

	cmd := &cobra.Command{
		Use:   "which",
		Short: "Print the path of the preferred installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.which(cmd.Context(), useCache || opts.cfg.Cache.Enabled)
			if err != nil {
				return err
			}
			return cliout.Print(map[string]string{"tool": opts.cfg.Tool, "path": path}, func() {
				fmt.Println(path)
			})
		},
	}
	cmd.Flags().BoolVar(&useCache, "cache", false, "Reuse the previous selection while the binary is unchanged")
	return cmd
}

// which resolves the executable path, consulting the selection cache when
// enabled. A valid override variable always wins over the cache.
func (o *rootOptions) which(ctx context.Context, useCache bool) (string, error) {
	r := o.resolver()
	if !useCache {
		return r.Which(ctx)
	}

	sc, err := o.selectionCache()
	if err != nil {
		return "", err
	}

	if path, ok := r.Override(); ok {
		return path, nil
	}

	inst, ok, err := sc.Load(o.cfg.Tool)
	if err != nil {
		log.Warn("ignoring selection cache", "error", err)
	}
	if ok {
		log.Debug("using cached selection", "path", inst.Path)
		return inst.Path, nil
	}

	inst, err = r.Find(ctx)
	if err != nil {
		return "", err
	}
	if err := sc.Store(o.cfg.Tool, inst); err != nil {
		log.Warn("failed to cache selection", "error", err)
	}
	return inst.Path, nil
}

func (o *rootOptions) selectionCache() (*cache.SelectionCache, error) {
	dir := o.cfg.Cache.Dir
	if dir == "" {
		defaultDir, err := cache.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = defaultDir
	}
	ttl := o.cfg.Cache.TTL
	if ttl == 0 {
		ttl = config.DefaultCacheTTL
	}
	return cache.NewSelectionCache(cache.Options{Dir: dir, TTL: ttl}), nil
}
