// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package resolver

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/toolenv/env"
	"github.com/jongio/toolenv/pathset"
	"github.com/jongio/toolenv/security"
	"github.com/jongio/toolenv/testutil"
)

// countIdentity returns how many segments of searchPath share dir's identity.
func countIdentity(searchPath, dir string) int {
	id := pathset.Identity(dir)
	count := 0
	for _, segment := range pathset.Split(searchPath) {
		if pathset.Identity(segment) == id {
			count++
		}
	}
	return count
}

func TestBuildExecutionEnvironmentPrependsMissingDir(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := filepath.Join(testutil.TempDir(t), ".nvm", "versions", "node", "v20.0.0", "bin")
	exe := testutil.FakeTool(t, dir, "claude", "version: 1.0.0")
	environ := []string{"HOME=/home/u", "PATH=/nonexistent/a:/nonexistent/b", "LANG=C"}

	spec, err := BuildExecutionEnvironment(exe, environ)
	require.NoError(t, err)

	assert.Equal(t, exe, spec.Path)
	assert.Equal(t, testutil.JoinPath(dir, "/nonexistent/a", "/nonexistent/b"), spec.PATH())
	assert.Equal(t, []string{"HOME=/home/u", "PATH=" + spec.PATH(), "LANG=C"}, spec.Env)
	assert.Equal(t, []string{"HOME=/home/u", "PATH=/nonexistent/a:/nonexistent/b", "LANG=C"}, environ, "input must not be modified")
}

func TestBuildExecutionEnvironmentDirAlreadyPresent(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := filepath.Join(testutil.TempDir(t), "bin")
	exe := testutil.FakeTool(t, dir, "claude", "version: 1.0.0")
	searchPath := testutil.JoinPath("/nonexistent/a", dir+"/", "/nonexistent/b")

	spec, err := BuildExecutionEnvironment(exe, []string{"PATH=" + searchPath})
	require.NoError(t, err)
	assert.Equal(t, searchPath, spec.PATH())
}

func TestBuildExecutionEnvironmentCollapsesInheritedDuplicates(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := filepath.Join(testutil.TempDir(t), "bin")
	exe := testutil.FakeTool(t, dir, "claude", "version: 1.0.0")

	spec, err := BuildExecutionEnvironment(exe, []string{"PATH=/nonexistent/a::/nonexistent/b:/nonexistent/a:/nonexistent/c:"})
	require.NoError(t, err)
	assert.Equal(t, testutil.JoinPath(dir, "/nonexistent/a", "/nonexistent/b", "/nonexistent/c"), spec.PATH())
}

func TestBuildExecutionEnvironmentWithoutPATH(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := filepath.Join(testutil.TempDir(t), "bin")
	exe := testutil.FakeTool(t, dir, "claude", "version: 1.0.0")

	spec, err := BuildExecutionEnvironment(exe, []string{"HOME=/home/u"})
	require.NoError(t, err)
	assert.Equal(t, []string{"HOME=/home/u", "PATH=" + dir}, spec.Env)
}

func TestBuildExecutionEnvironmentRepeatedNeverGrows(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := filepath.Join(testutil.TempDir(t), ".volta", "bin")
	exe := testutil.FakeTool(t, dir, "claude", "version: 1.0.0")

	environ := []string{"PATH=/nonexistent/a:/nonexistent/b"}
	var first string
	for i := range 10 {
		spec, err := BuildExecutionEnvironment(exe, environ)
		require.NoError(t, err)
		assert.Equal(t, 1, countIdentity(spec.PATH(), dir), "iteration %d", i)
		if i == 0 {
			first = spec.PATH()
		}
		assert.Equal(t, first, spec.PATH(), "iteration %d", i)
		environ = spec.Env
	}
}

func TestBuildExecutionEnvironmentInvalidPath(t *testing.T) {
	for _, path := range []string{"", "   ", "/usr/bin/cla\x00ude"} {
		_, err := BuildExecutionEnvironment(path, []string{"PATH=/usr/bin"})
		assert.True(t, errors.Is(err, security.ErrInvalidPath), "%q", path)
	}
}

func TestBuildExecutionEnvironmentAddsInterpreterDir(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	prefix := filepath.Join(root, ".nvm", "versions", "node", "v20.0.0")
	nodeDir := filepath.Join(prefix, "bin")
	testutil.WriteExecutable(t, nodeDir, "node", "#!/bin/sh\n")
	script := testutil.WriteExecutable(t,
		filepath.Join(prefix, "lib", "node_modules", "@scope", "cli"), "cli.js", "#!/usr/bin/env node\n")

	// Linked from a directory that does not hold node.
	linkDir := filepath.Join(root, ".local", "bin")
	exe := filepath.Join(linkDir, "claude")
	testutil.Symlink(t, script, exe)

	spec, err := BuildExecutionEnvironment(exe, []string{"PATH=/nonexistent/bin"})
	require.NoError(t, err)
	assert.Equal(t, testutil.JoinPath(linkDir, nodeDir, "/nonexistent/bin"), spec.PATH())
	assert.Equal(t, []string{linkDir, nodeDir}, RequiredDirs(exe, "/nonexistent/bin"))

	again, err := BuildExecutionEnvironment(exe, spec.Env)
	require.NoError(t, err)
	assert.Equal(t, spec.PATH(), again.PATH())
}

func TestRequiredDirsInterpreterReachable(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	nodeDir := filepath.Join(root, "node", "bin")
	testutil.WriteExecutable(t, nodeDir, "node", "#!/bin/sh\n")
	exe := testutil.WriteExecutable(t, filepath.Join(root, "bin"), "claude", "#!/usr/bin/env node\n")

	assert.Equal(t, []string{filepath.Join(root, "bin")}, RequiredDirs(exe, nodeDir))
}

func TestRequiredDirsInterpreterNotFound(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	exe := testutil.WriteExecutable(t, filepath.Join(root, "bin"), "claude", "#!/usr/bin/env no-such-interpreter\n")

	assert.Equal(t, []string{filepath.Join(root, "bin")}, RequiredDirs(exe, "/usr/bin"))
}

func TestExecSpecCommand(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := filepath.Join(testutil.TempDir(t), "bin")
	exe := testutil.WriteExecutable(t, dir, "printpath", "#!/bin/sh\nprintf '%s' \"$PATH\"\n")

	spec, err := BuildExecutionEnvironment(exe, []string{"PATH=/nonexistent/a:/nonexistent/b"})
	require.NoError(t, err)

	out, err := spec.Command(context.Background()).Output()
	require.NoError(t, err)
	assert.Equal(t, spec.PATH(), string(out))
	assert.True(t, strings.HasPrefix(string(out), dir))
}

func TestBuildProcessExecutionEnvironment(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := filepath.Join(testutil.TempDir(t), "bin")
	exe := testutil.FakeTool(t, dir, "claude", "version: 1.0.0")
	t.Setenv("PATH", "/nonexistent/a:/nonexistent/b")
	t.Setenv("TOOLENV_MARKER", "present")

	spec, err := BuildProcessExecutionEnvironment(exe)
	require.NoError(t, err)
	assert.Equal(t, testutil.JoinPath(dir, "/nonexistent/a", "/nonexistent/b"), spec.PATH())
	assert.Equal(t, "present", env.Get(spec.Env, "TOOLENV_MARKER"))
}
