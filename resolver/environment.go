// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package resolver

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jongio/toolenv/env"
	"github.com/jongio/toolenv/fileutil"
	"github.com/jongio/toolenv/pathset"
	"github.com/jongio/toolenv/security"
	"github.com/jongio/toolenv/shellutil"
)

// interpreterSearchDepth is how many ancestors of a script's real directory
// are searched for its interpreter.
const interpreterSearchDepth = 5

// ExecSpec is an executable together with the environment to launch it in.
type ExecSpec struct {
	Path string   `json:"path"`
	Env  []string `json:"env"`
}

// PATH returns the search path in Env.
func (s ExecSpec) PATH() string {
	return env.Get(s.Env, pathset.EnvPATH)
}

// Command returns an exec.Cmd for the executable with Env applied.
func (s ExecSpec) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.Path, args...)
	cmd.Env = s.Env
	return cmd
}

// BuildExecutionEnvironment returns environ with PATH extended by the
// directories executablePath needs. Each required directory is prepended
// only when missing and the result is deduplicated, so feeding the output
// back in any number of times yields the same PATH. Only PATH changes.
// The returned Path is absolute.
func BuildExecutionEnvironment(executablePath string, environ []string) (ExecSpec, error) {
	path, err := security.ValidateExecutablePath(executablePath)
	if err != nil {
		return ExecSpec{}, err
	}

	searchPath := env.Get(environ, pathset.EnvPATH)
	dirs := RequiredDirs(path, searchPath)
	for i := len(dirs) - 1; i >= 0; i-- {
		searchPath = pathset.AddIfMissing(searchPath, dirs[i])
	}
	searchPath = pathset.Deduplicate(searchPath)

	return ExecSpec{
		Path: path,
		Env:  env.Set(environ, pathset.EnvPATH, searchPath),
	}, nil
}

// BuildProcessExecutionEnvironment is BuildExecutionEnvironment over the
// current process environment.
func BuildProcessExecutionEnvironment(executablePath string) (ExecSpec, error) {
	return BuildExecutionEnvironment(executablePath, os.Environ())
}

// RequiredDirs returns the directories that must be on PATH to run the
// executable, most important first: its own directory, then the directory of
// the interpreter named by an env-style shebang when searchPath and the
// executable's directory do not already provide it.
func RequiredDirs(executablePath, searchPath string) []string {
	dir := filepath.Dir(executablePath)
	dirs := []string{dir}

	interp := shellutil.EnvInterpreter(executablePath)
	if interp == "" {
		return dirs
	}
	if findInDirs(interp, append([]string{dir}, pathset.Split(searchPath)...)) != "" {
		return dirs
	}
	if interpDir := interpreterDir(executablePath, interp); interpDir != "" {
		dirs = append(dirs, interpDir)
	}
	return dirs
}

// interpreterDir looks for interp near the real location of a script, for
// example node in <prefix>/bin for a script linked from
// <prefix>/lib/node_modules/<pkg>.
func interpreterDir(executablePath, interp string) string {
	real, err := filepath.EvalSymlinks(executablePath)
	if err != nil {
		return ""
	}

	var dirs []string
	ancestor := filepath.Dir(real)
	for range interpreterSearchDepth {
		dirs = append(dirs, ancestor, filepath.Join(ancestor, "bin"))
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		ancestor = parent
	}
	return findInDirs(interp, dirs)
}

// findInDirs returns the first directory holding an executable named name.
func findInDirs(name string, dirs []string) string {
	for _, dir := range dirs {
		for _, candidate := range candidateNames(name) {
			if fileutil.IsExecutable(filepath.Join(dir, candidate)) {
				return dir
			}
		}
	}
	return ""
}
