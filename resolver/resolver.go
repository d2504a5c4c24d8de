// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package resolver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jongio/toolenv/cmdutil"
	"github.com/jongio/toolenv/fileutil"
	"github.com/jongio/toolenv/logutil"
	"github.com/jongio/toolenv/metrics"
	"github.com/jongio/toolenv/security"
)

const (
	// DefaultTool is the tool resolved when Options.Tool is empty.
	DefaultTool = "claude"
	// DefaultTimeout bounds a single version query.
	DefaultTimeout = 5 * time.Second
	// DefaultConcurrency is the number of candidates probed at once.
	DefaultConcurrency = 4
)

// DefaultVersionArgs are passed to a candidate to ask for its version.
var DefaultVersionArgs = []string{"--version"}

// Runner runs a candidate and returns its combined stdout and stderr.
// Output produced before a failure should be returned with the error.
type Runner interface {
	Output(ctx context.Context, name string, args, env []string) ([]byte, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, name string, args, env []string) ([]byte, error)

// Output calls f.
func (f RunnerFunc) Output(ctx context.Context, name string, args, env []string) ([]byte, error) {
	return f(ctx, name, args, env)
}

// commandRunner runs candidates as subprocesses, killing the process tree
// on timeout.
type commandRunner struct {
	timeout time.Duration
}

func (r commandRunner) Output(ctx context.Context, name string, args, env []string) ([]byte, error) {
	return cmdutil.RunWithTimeoutOutput(ctx, name, args, env, r.timeout)
}

// Options configures a Resolver. Zero values select the defaults.
type Options struct {
	// Tool is the executable name, without extension.
	Tool string
	// Home is the user's home directory. Empty uses os.UserHomeDir.
	Home string
	// VersionArgs are the arguments of the version query.
	VersionArgs []string
	// Timeout bounds each version query.
	Timeout time.Duration
	// Concurrency limits how many candidates are probed at once.
	Concurrency int
	// Locations replaces DefaultLocations when non-nil.
	Locations []Location
	// ExtraLocations are probed before all other locations.
	ExtraLocations []Location
	// BundledDir holds a copy shipped with the host application. It is
	// probed first after ExtraLocations.
	BundledDir string
	// OverrideEnv names an environment variable whose value, when it points
	// at an executable, is returned by Which without discovery.
	OverrideEnv string
	// Environ is the inherited environment. Nil reads os.Environ at call time.
	Environ []string
	// Runner executes version queries. Nil runs real subprocesses.
	Runner Runner
}

// Resolver discovers and selects installations of one tool. It holds no
// state between calls; every Discover re-probes the file system.
type Resolver struct {
	opts   Options
	runner Runner
	log    *logutil.ComponentLogger
}

// New returns a Resolver with defaults applied to opts.
func New(opts Options) *Resolver {
	if opts.Tool == "" {
		opts.Tool = DefaultTool
	}
	if opts.Home == "" {
		if home, err := os.UserHomeDir(); err == nil {
			opts.Home = home
		}
	}
	if len(opts.VersionArgs) == 0 {
		opts.VersionArgs = DefaultVersionArgs
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	runner := opts.Runner
	if runner == nil {
		runner = commandRunner{timeout: opts.Timeout}
	}

	return &Resolver{
		opts:   opts,
		runner: runner,
		log:    logutil.NewLogger("resolver").WithTool(opts.Tool),
	}
}

// Tool returns the name of the resolved tool.
func (r *Resolver) Tool() string {
	return r.opts.Tool
}

// Locations returns the directories Discover probes, in order, with
// duplicates by identity removed.
func (r *Resolver) Locations() []Location {
	locs := append([]Location(nil), r.opts.ExtraLocations...)
	if r.opts.BundledDir != "" {
		locs = append(locs, Location{Dir: r.opts.BundledDir, Kind: KindBundled})
	}
	if r.opts.Locations != nil {
		locs = append(locs, r.opts.Locations...)
	} else {
		locs = append(locs, DefaultLocations(r.opts.Home)...)
	}
	return dedupeLocations(locs)
}

func (r *Resolver) environ() []string {
	if r.opts.Environ != nil {
		return r.opts.Environ
	}
	return os.Environ()
}

// candidate is a file path that may hold the tool.
type candidate struct {
	path string
	kind InstallKind
	real string
}

// Discover returns every present, executable copy of the tool in probe
// order. Copies that resolve to the same file are reported once. Failures
// on a single candidate exclude it or leave its version nil; they never
// abort discovery. An invalid tool name yields no installations.
func (r *Resolver) Discover(ctx context.Context) []Installation {
	log := r.log.WithOperation("discover")
	if err := security.ValidateToolName(r.opts.Tool); err != nil {
		log.Error("refusing to probe", "error", err)
		return nil
	}

	var candidates []candidate
	for _, loc := range r.Locations() {
		for _, name := range candidateNames(r.opts.Tool) {
			candidates = append(candidates, candidate{path: filepath.Join(loc.Dir, name), kind: loc.Kind})
		}
	}

	present := make([]bool, len(candidates))
	r.forEach(ctx, len(candidates), func(i int) {
		present[i] = r.stat(log, &candidates[i])
	})

	seen := make(map[string]bool)
	var found []candidate
	for i, c := range candidates {
		if !present[i] {
			continue
		}
		if seen[c.real] {
			log.Debug("skipping duplicate", "path", c.path, "target", c.real)
			metrics.RecordProbe(r.opts.Tool, c.kind.String(), metrics.OutcomeDuplicate)
			continue
		}
		seen[c.real] = true
		found = append(found, c)
	}

	environ := r.environ()
	installs := make([]Installation, len(found))
	r.forEach(ctx, len(found), func(i int) {
		c := found[i]
		installs[i] = Installation{
			Path:    c.path,
			Version: r.queryVersion(ctx, log, c.path, environ),
			Kind:    c.kind,
		}
		outcome := metrics.OutcomeFound
		if installs[i].Version == nil {
			outcome = metrics.OutcomeNoVersion
		}
		metrics.RecordProbe(r.opts.Tool, c.kind.String(), outcome)
	})

	log.Debug("discovery complete", "candidates", len(candidates), "installations", len(installs))
	return installs
}

// forEach runs fn for indexes 0..n-1 with bounded concurrency.
func (r *Resolver) forEach(ctx context.Context, n int, fn func(i int)) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// stat reports whether c is a present executable and fills in its real path.
// A missing file is not logged; any other failure is.
func (r *Resolver) stat(log *logutil.ComponentLogger, c *candidate) bool {
	err := fileutil.StatExecutable(c.path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return false
	case errors.Is(err, fileutil.ErrIsDirectory), errors.Is(err, fileutil.ErrNotExecutable):
		log.Debug("excluding candidate", "path", c.path, "reason", err)
		metrics.RecordProbe(r.opts.Tool, c.kind.String(), metrics.OutcomeExcluded)
		return false
	default:
		log.Warn("excluding candidate", "path", c.path, "error", err)
		metrics.RecordProbe(r.opts.Tool, c.kind.String(), metrics.OutcomeExcluded)
		return false
	}

	c.real = c.path
	if real, err := filepath.EvalSymlinks(c.path); err == nil {
		c.real = real
	}
	return true
}

// queryVersion runs the version query for path and parses its output.
// Any failure yields nil.
func (r *Resolver) queryVersion(ctx context.Context, log *logutil.ComponentLogger, path string, environ []string) *Version {
	spec, err := BuildExecutionEnvironment(path, environ)
	if err != nil {
		log.Warn("cannot build environment", "path", path, "error", err)
		metrics.RecordVersionQuery(r.opts.Tool, metrics.QueryFailed, 0)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	start := time.Now()
	output, runErr := r.runner.Output(ctx, spec.Path, r.opts.VersionArgs, spec.Env)
	elapsed := time.Since(start)

	// Output captured before a timeout is discarded even when it parses.
	if errors.Is(runErr, cmdutil.ErrTimeout) || ctx.Err() != nil {
		log.Warn("version query timed out", "path", path, "timeout", r.opts.Timeout)
		metrics.RecordVersionQuery(r.opts.Tool, metrics.QueryTimeout, elapsed)
		return nil
	}

	v, ok := ParseVersion(string(output))
	var outcome string
	switch {
	case ok:
		outcome = metrics.QueryParsed
	case runErr != nil:
		outcome = metrics.QueryFailed
		log.Debug("version query failed", "path", path, "error", runErr)
	default:
		outcome = metrics.QueryNoOutput
		log.Debug("version output not recognized", "path", path)
	}
	metrics.RecordVersionQuery(r.opts.Tool, outcome, elapsed)

	if !ok {
		return nil
	}
	return &v
}
