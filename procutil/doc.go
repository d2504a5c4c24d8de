// Package procutil provides cross-platform process utilities built on
// github.com/shirou/gopsutil.
//
// gopsutil queries each platform natively (the /proc filesystem on Linux,
// sysctl on macOS and the BSDs, OpenProcess on Windows), which avoids the
// stale-PID behavior of os.FindProcess plus Signal(0) on Windows.
//
// # Key Features
//
//   - IsProcessRunning: existence check for a PID
//   - KillTree: terminate a process together with every descendant
//
// KillTree exists for subprocesses started through a wrapper script. A
// version query such as `tool --version` is often a shell or node shim that
// forks the real binary; killing only the direct child leaves the grandchild
// holding the output pipe open, and the caller's read never returns.
//
// # Example Usage
//
//	cmd := exec.CommandContext(ctx, path, "--version")
//	cmd.Cancel = func() error { return procutil.KillTree(cmd.Process.Pid) }
package procutil
