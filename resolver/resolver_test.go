// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/toolenv/cmdutil"
	"github.com/jongio/toolenv/env"
	"github.com/jongio/toolenv/metrics"
	"github.com/jongio/toolenv/pathset"
	"github.com/jongio/toolenv/security"
	"github.com/jongio/toolenv/testutil"
)

// fakeEnviron is a minimal inherited environment for discovery tests.
var fakeEnviron = []string{"PATH=/usr/bin:/bin", "HOME=/nonexistent"}

func paths(installs []Installation) []string {
	result := make([]string, len(installs))
	for i, inst := range installs {
		result[i] = inst.Path
	}
	return result
}

func TestDiscoverFindsVersionedInstallations(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	direct := filepath.Join(root, "usr", "local", "bin")
	user := filepath.Join(root, "home", ".local", "bin")
	nvm := filepath.Join(root, "home", ".nvm", "versions", "node", "v20.0.0", "bin")

	testutil.FakeTool(t, direct, "faketool", "faketool version: 1.0.0")
	testutil.FakeTool(t, user, "faketool", "faketool version: 2.3.4-beta")
	testutil.FakeTool(t, nvm, "faketool", "no version here")

	r := New(Options{
		Tool: "faketool",
		Locations: []Location{
			{Dir: direct, Kind: KindDirect},
			{Dir: filepath.Join(root, "missing"), Kind: KindDirect},
			{Dir: user, Kind: KindUserLocal},
			{Dir: nvm, Kind: KindVersionManager},
		},
		Environ: fakeEnviron,
	})

	installs := r.Discover(context.Background())

	require.Len(t, installs, 3)
	assert.Equal(t, Installation{Path: filepath.Join(direct, "faketool"), Version: v(1, 0, 0), Kind: KindDirect}, installs[0])
	assert.Equal(t, Installation{Path: filepath.Join(user, "faketool"), Version: v(2, 3, 4), Kind: KindUserLocal}, installs[1])
	assert.Equal(t, Installation{Path: filepath.Join(nvm, "faketool"), Kind: KindVersionManager}, installs[2])

	best, err := r.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(user, "faketool"), best.Path)
}

func TestDiscoverDefaultLocationsUnderHome(t *testing.T) {
	testutil.SkipOnWindows(t)
	home := testutil.TempDir(t)
	older := filepath.Join(home, ".nvm", "versions", "node", "v18.0.0", "bin")
	newer := filepath.Join(home, ".nvm", "versions", "node", "v22.0.0", "bin")
	testutil.FakeTool(t, older, "toolenv-test-tool", "version: 1.0.0")
	testutil.FakeTool(t, newer, "toolenv-test-tool", "version: 1.5.0")

	r := New(Options{Tool: "toolenv-test-tool", Home: home, Environ: fakeEnviron})

	installs := r.Discover(context.Background())
	require.Len(t, installs, 2)
	assert.Equal(t, []string{filepath.Join(older, "toolenv-test-tool"), filepath.Join(newer, "toolenv-test-tool")}, paths(installs))
	for _, inst := range installs {
		assert.Equal(t, KindVersionManager, inst.Kind)
	}

	which, err := r.Which(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(newer, "toolenv-test-tool"), which)
}

func TestDiscoverExcludesUnusableCandidates(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	tool := "excluded-tool"

	notExec := filepath.Join(root, "noexec")
	require.NoError(t, os.MkdirAll(notExec, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(notExec, tool), []byte("#!/bin/sh\n"), 0o644))

	dirCandidate := filepath.Join(root, "dir")
	require.NoError(t, os.MkdirAll(filepath.Join(dirCandidate, tool), 0o755))

	good := filepath.Join(root, "good")
	testutil.FakeTool(t, good, tool, "version: 3.0.0")

	excluded := metrics.ProbeCounter(tool, KindUserLocal.String(), metrics.OutcomeExcluded)
	before := promtestutil.ToFloat64(excluded)

	r := New(Options{
		Tool: tool,
		Locations: []Location{
			{Dir: notExec, Kind: KindUserLocal},
			{Dir: dirCandidate, Kind: KindUserLocal},
			{Dir: good, Kind: KindUserLocal},
		},
		Environ: fakeEnviron,
	})

	installs := r.Discover(context.Background())
	assert.Equal(t, []string{filepath.Join(good, tool)}, paths(installs))
	assert.Equal(t, before+2, promtestutil.ToFloat64(excluded))
}

func TestDiscoverKeepsCandidatesWithoutVersion(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	tool := "noversion-tool"

	failing := testutil.WriteExecutable(t, filepath.Join(root, "failing"), tool, "#!/bin/sh\necho broken >&2\nexit 2\n")
	failingWithVersion := testutil.WriteExecutable(t, filepath.Join(root, "exit1"), tool, "#!/bin/sh\necho 'version: 0.4.0'\nexit 1\n")
	stderrOnly := testutil.WriteExecutable(t, filepath.Join(root, "stderr"), tool, "#!/bin/sh\necho 'version: 0.5.0' >&2\n")

	r := New(Options{
		Tool: tool,
		Locations: []Location{
			{Dir: filepath.Dir(failing), Kind: KindDirect},
			{Dir: filepath.Dir(failingWithVersion), Kind: KindDirect},
			{Dir: filepath.Dir(stderrOnly), Kind: KindDirect},
		},
		Environ: fakeEnviron,
	})

	installs := r.Discover(context.Background())
	require.Len(t, installs, 3)
	assert.Nil(t, installs[0].Version)
	assert.Equal(t, v(0, 4, 0), installs[1].Version)
	assert.Equal(t, v(0, 5, 0), installs[2].Version)
}

func TestDiscoverTimeoutDoesNotStall(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	tool := "slow-tool"

	slow := testutil.WriteExecutable(t, filepath.Join(root, "slow"), tool, "#!/bin/sh\nsleep 10\necho 'version: 9.9.9'\n")
	fast := testutil.FakeTool(t, filepath.Join(root, "fast"), tool, "version: 1.0.0")

	timeouts := metrics.ProbeCounter(tool, KindDirect.String(), metrics.OutcomeNoVersion)
	before := promtestutil.ToFloat64(timeouts)

	r := New(Options{
		Tool:    tool,
		Timeout: 200 * time.Millisecond,
		Locations: []Location{
			{Dir: filepath.Dir(slow), Kind: KindDirect},
			{Dir: filepath.Dir(fast), Kind: KindDirect},
		},
		Environ: fakeEnviron,
	})

	start := time.Now()
	installs := r.Discover(context.Background())
	elapsed := time.Since(start)

	require.Len(t, installs, 2)
	assert.Nil(t, installs[0].Version)
	assert.Equal(t, v(1, 0, 0), installs[1].Version)
	assert.Less(t, elapsed, 5*time.Second)
	assert.Equal(t, before+1, promtestutil.ToFloat64(timeouts))

	best, err := Select(installs)
	require.NoError(t, err)
	assert.Equal(t, fast, best.Path)
}

func TestDiscoverTimedOutCandidateHasNoVersion(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	tool := "late-tool"
	slow := testutil.WriteExecutable(t, root, tool, "#!/bin/sh\nsleep 10\necho 'version: 9.9.9'\n")

	r := New(Options{
		Tool:      tool,
		Timeout:   100 * time.Millisecond,
		Locations: []Location{{Dir: filepath.Dir(slow), Kind: KindDirect}},
		Environ:   fakeEnviron,
	})

	for i := 0; i < 15; i++ {
		installs := r.Discover(context.Background())
		require.Len(t, installs, 1)
		assert.Nil(t, installs[0].Version, "iteration %d", i)
	}
}

func TestQueryVersionDiscardsOutputOnTimeout(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	tool := "partial-tool"
	testutil.FakeTool(t, root, tool, "unused")

	r := New(Options{
		Tool:      tool,
		Locations: []Location{{Dir: root, Kind: KindDirect}},
		Environ:   fakeEnviron,
		Runner: RunnerFunc(func(ctx context.Context, name string, args, env []string) ([]byte, error) {
			return []byte("version: 3.0.0"), cmdutil.ErrTimeout
		}),
	})

	installs := r.Discover(context.Background())
	require.Len(t, installs, 1)
	assert.Nil(t, installs[0].Version)
}

func TestDiscoverReportsSymlinkedCopyOnce(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	tool := "linked-tool"

	target := testutil.FakeTool(t, filepath.Join(root, "versions", "1.0", "bin"), tool, "version: 1.0.0")
	linkDir := filepath.Join(root, "bin")
	testutil.Symlink(t, target, filepath.Join(linkDir, tool))

	r := New(Options{
		Tool: tool,
		Locations: []Location{
			{Dir: linkDir, Kind: KindUserLocal},
			{Dir: filepath.Dir(target), Kind: KindVersionManager},
		},
		Environ: fakeEnviron,
	})

	installs := r.Discover(context.Background())
	require.Len(t, installs, 1)
	assert.Equal(t, filepath.Join(linkDir, tool), installs[0].Path)
	assert.Equal(t, KindUserLocal, installs[0].Kind)
}

func TestDiscoverReprobesOnEveryCall(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := filepath.Join(testutil.TempDir(t), "bin")
	tool := "late-tool"

	r := New(Options{Tool: tool, Locations: []Location{{Dir: dir, Kind: KindDirect}}, Environ: fakeEnviron})

	assert.Empty(t, r.Discover(context.Background()))
	_, err := r.Find(context.Background())
	assert.True(t, errors.Is(err, ErrNotFound))

	testutil.FakeTool(t, dir, tool, "version: 1.0.0")
	assert.Len(t, r.Discover(context.Background()), 1)
}

func TestDiscoverUsesRunnerWithExecutionEnvironment(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	tool := "runner-tool"
	dirs := []string{filepath.Join(root, "a"), filepath.Join(root, "b"), filepath.Join(root, "c")}
	var locs []Location
	for _, dir := range dirs {
		testutil.WriteExecutable(t, dir, tool, "#!/bin/sh\n")
		locs = append(locs, Location{Dir: dir, Kind: KindUserLocal})
	}

	var calls atomic.Int32
	runner := RunnerFunc(func(ctx context.Context, name string, args, environ []string) ([]byte, error) {
		calls.Add(1)
		assert.Equal(t, []string{"-v"}, args)
		assert.True(t, pathset.ContainsDirectory(env.Get(environ, "PATH"), filepath.Dir(name)))
		assert.Equal(t, "kept", env.Get(environ, "OTHER"))
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)

		switch filepath.Base(filepath.Dir(name)) {
		case "a":
			return []byte("version: 1.0.0"), nil
		case "b":
			return []byte("version: 1.0.0"), nil
		}
		return nil, errors.New("exec failed")
	})

	r := New(Options{
		Tool:        tool,
		VersionArgs: []string{"-v"},
		Concurrency: 1,
		Locations:   locs,
		Environ:     []string{"PATH=/usr/bin", "OTHER=kept"},
		Runner:      runner,
	})

	installs := r.Discover(context.Background())
	assert.Equal(t, int32(3), calls.Load())
	require.Len(t, installs, 3)
	assert.Nil(t, installs[2].Version)

	best, err := Select(installs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dirs[0], tool), best.Path, "equal versions keep probe order")
}

func TestDiscoverInvalidToolName(t *testing.T) {
	r := New(Options{Tool: "../evil", Locations: []Location{{Dir: "/usr/bin"}}})

	assert.Nil(t, r.Discover(context.Background()))

	_, err := r.Find(context.Background())
	assert.True(t, errors.Is(err, security.ErrInvalidToolName))
}

func TestNewDefaults(t *testing.T) {
	r := New(Options{})

	assert.Equal(t, DefaultTool, r.Tool())
	assert.Equal(t, DefaultTimeout, r.opts.Timeout)
	assert.Equal(t, DefaultConcurrency, r.opts.Concurrency)
	assert.Equal(t, DefaultVersionArgs, r.opts.VersionArgs)
	assert.IsType(t, commandRunner{}, r.runner)
}

func TestWhichOverride(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	tool := "override-tool"
	override := testutil.FakeTool(t, filepath.Join(root, "custom"), tool, "version: 0.0.1")
	discovered := testutil.FakeTool(t, filepath.Join(root, "bin"), tool, "version: 5.0.0")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "executable override wins", value: override, want: override},
		{name: "missing override falls back", value: filepath.Join(root, "missing", tool), want: discovered},
		{name: "directory override falls back", value: root, want: discovered},
		{name: "empty override falls back", value: "", want: discovered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(Options{
				Tool:        tool,
				OverrideEnv: "OVERRIDE_TOOL_PATH",
				Locations:   []Location{{Dir: filepath.Dir(discovered), Kind: KindDirect}},
				Environ:     append([]string{"OVERRIDE_TOOL_PATH=" + tt.value}, fakeEnviron...),
			})

			got, err := r.Which(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWhichNotFound(t *testing.T) {
	r := New(Options{
		Tool:      "absent-tool",
		Locations: []Location{{Dir: filepath.Join(t.TempDir(), "bin"), Kind: KindDirect}},
		Environ:   fakeEnviron,
	})

	_, err := r.Which(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, strings.HasPrefix(err.Error(), "absent-tool:"))
}
