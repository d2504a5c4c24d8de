// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package resolver

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jongio/toolenv/env"
	"github.com/jongio/toolenv/fileutil"
	"github.com/jongio/toolenv/security"
)

// ErrNotFound is returned when no installation of the tool exists.
var ErrNotFound = errors.New("no installation available")

// compareInstallations orders a before b when a has the higher version.
// A present version outranks an absent one.
func compareInstallations(a, b Installation) int {
	switch {
	case a.Version != nil && b.Version != nil:
		return b.Version.Compare(*a.Version)
	case a.Version != nil:
		return -1
	case b.Version != nil:
		return 1
	}
	return 0
}

// Rank returns installs ordered by preference: highest version first,
// unversioned last, equal ranks in their original order.
func Rank(installs []Installation) []Installation {
	ranked := slices.Clone(installs)
	slices.SortStableFunc(ranked, compareInstallations)
	return ranked
}

// Select returns the preferred installation, or ErrNotFound when installs
// is empty.
func Select(installs []Installation) (Installation, error) {
	if len(installs) == 0 {
		return Installation{}, ErrNotFound
	}
	return Rank(installs)[0], nil
}

// Find discovers installations and selects the preferred one.
func (r *Resolver) Find(ctx context.Context) (Installation, error) {
	if err := security.ValidateToolName(r.opts.Tool); err != nil {
		return Installation{}, err
	}

	inst, err := Select(r.Discover(ctx))
	if err != nil {
		return Installation{}, fmt.Errorf("%s: %w", r.opts.Tool, err)
	}
	r.log.WithOperation("find").Info("selected installation",
		"path", inst.Path, "version", inst.VersionString(), "kind", inst.Kind.String())
	return inst, nil
}

// Which returns the path of the executable to run. A usable path in the
// override variable wins; otherwise Find decides.
func (r *Resolver) Which(ctx context.Context) (string, error) {
	if path, ok := r.Override(); ok {
		return path, nil
	}

	inst, err := r.Find(ctx)
	if err != nil {
		return "", err
	}
	return inst.Path, nil
}

// Override returns the executable named by the override variable when it
// is set and names an existing executable file.
func (r *Resolver) Override() (string, bool) {
	if r.opts.OverrideEnv == "" {
		return "", false
	}
	value, ok := env.Lookup(r.environ(), r.opts.OverrideEnv)
	if !ok || value == "" {
		return "", false
	}

	log := r.log.WithOperation("which")
	path, err := security.ValidateExecutablePath(value)
	if err == nil {
		err = fileutil.StatExecutable(path)
	}
	if err != nil {
		log.Warn("ignoring override", "variable", r.opts.OverrideEnv, "error", err)
		return "", false
	}
	log.Debug("using override", "variable", r.opts.OverrideEnv, "path", path)
	return path, true
}
