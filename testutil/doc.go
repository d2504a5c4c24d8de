// Package testutil provides common testing utilities for toolenv packages.
//
// This package includes helpers for:
//   - Capturing stdout during test execution (CaptureOutput)
//   - Creating symlink-resolved temporary directories (TempDir)
//   - Writing fake tool executables (WriteExecutable, FakeTool)
//   - Joining search paths (JoinPath)
//
// All functions use t.Helper() for proper test line reporting. Fake tools are
// POSIX shell scripts; tests using them skip on Windows via SkipOnWindows.
//
// Example usage:
//
//	func TestDiscover(t *testing.T) {
//	    testutil.SkipOnWindows(t)
//	    home := testutil.TempDir(t)
//	    testutil.FakeTool(t, filepath.Join(home, ".local", "bin"), "claude", "claude version: 1.2.3")
//	}
package testutil
