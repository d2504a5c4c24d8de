// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// CaptureOutput captures stdout during function execution.
// It redirects os.Stdout to a pipe, executes the function, and returns the captured output.
// The original stdout is always restored, even if the function returns an error.
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	os.Stdout = w

	// Buffered to avoid goroutine leak
	outCh := make(chan string, 1)
	go func() {
		var output strings.Builder
		buf := make([]byte, 1024)
		for {
			n, readErr := r.Read(buf)
			if n > 0 {
				output.Write(buf[:n])
			}
			if readErr != nil {
				break
			}
		}
		outCh <- output.String()
	}()

	fnErr := fn()

	if err := w.Close(); err != nil {
		t.Logf("Failed to close pipe writer: %v", err)
	}
	os.Stdout = origStdout

	output := <-outCh

	if fnErr != nil {
		t.Logf("Command error: %v", fnErr)
	}

	return output
}

// TempDir creates a temporary directory removed after the test. The path is
// symlink-resolved so it compares equal to canonical path identities (macOS
// places temp directories under the /var -> /private/var link).
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	return dir
}

// SkipOnWindows skips tests that rely on POSIX scripts or permissions.
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires POSIX shell scripts and permission bits")
	}
}

// WriteExecutable writes content to dir/name with mode 0755, creating dir.
func WriteExecutable(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil { // #nosec G306 - test executable
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// FakeTool writes a shell script named name in dir that prints output and
// exits successfully. It returns the script path.
func FakeTool(t *testing.T, dir, name, output string) string {
	t.Helper()
	return WriteExecutable(t, dir, name, fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' '%s'\n", output))
}

// Symlink creates newname pointing at oldname, creating parent directories.
func Symlink(t *testing.T, oldname, newname string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(newname), 0o755); err != nil {
		t.Fatalf("Failed to create parent of %s: %v", newname, err)
	}
	if err := os.Symlink(oldname, newname); err != nil {
		t.Fatalf("Failed to symlink %s -> %s: %v", newname, oldname, err)
	}
}

// JoinPath joins directories with the platform list separator.
func JoinPath(dirs ...string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}
