// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/toolenv/cliout"
	"github.com/jongio/toolenv/config"
	"github.com/jongio/toolenv/logutil"
	"github.com/jongio/toolenv/resolver"
	"github.com/jongio/toolenv/version"
)

// rootOptions holds global flag values and the configuration they produce.
type rootOptions struct {
	configPath string
	tool       string
	output     formatValue
	debug      bool
	jsonLogs   bool
	timeout    time.Duration
	extraDirs  []string

	cfg *config.Config
}

var log = logutil.NewLogger("cli")

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "toolenv",
		Short: "Locate installations of a command-line tool and build its launch environment",
		Long: `toolenv probes system, user-local and version-manager directories for a
tool, picks the newest installation, and computes a PATH that lets it run
even when the current PATH does not include its directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default $XDG_CONFIG_HOME/toolenv/config.yaml)")
	flags.StringVarP(&opts.tool, "tool", "t", "", "Tool to resolve (default from config, \"claude\")")
	flags.VarP(&opts.output, "output", "o", "Output format: default or json")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.jsonLogs, "log-json", false, "Write logs as JSON")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Version query timeout per candidate")
	flags.StringSliceVar(&opts.extraDirs, "extra-dir", nil, "Additional directory to probe first (repeatable)")

	cmd.AddCommand(
		newDiscoverCmd(opts),
		newWhichCmd(opts),
		newEnvCmd(opts),
		newExecCmd(opts),
		newPathCmd(opts),
		version.NewCommand(version.New("toolenv")),
	)
	return cmd
}

// setup configures logging and output and loads the effective config.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	logutil.SetupLogger(o.debug, o.jsonLogs)
	if err := cliout.SetFormat(o.output.String()); err != nil {
		return err
	}

	path := o.configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			log.Debug("no default config path", "error", err)
		}
		path = defaultPath
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("tool") {
		cfg.Tool = o.tool
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	for _, dir := range o.extraDirs {
		cfg.ExtraDirs = append(cfg.ExtraDirs, config.ExtraDir{Dir: dir})
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Debug("configuration loaded", "path", path, "tool", cfg.Tool, "flags", changedFlags(flags))
	o.cfg = cfg
	return nil
}

// resolver builds a resolver from the effective configuration.
func (o *rootOptions) resolver() *resolver.Resolver {
	return resolver.New(o.cfg.ResolverOptions(""))
}
