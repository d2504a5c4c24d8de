// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cmdutil provides bounded command execution: context cancellation
// kills the whole process tree, and pipe draining after a kill is capped so a
// hung grandchild cannot block the caller.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/jongio/toolenv/procutil"
)

// DefaultTimeout is the default timeout for command execution.
const DefaultTimeout = 30 * time.Minute

// DefaultWaitDelay bounds how long Wait keeps draining output pipes after
// the process was killed or exited.
const DefaultWaitDelay = 500 * time.Millisecond

// ErrTimeout is returned when a command is stopped because its deadline passed.
var ErrTimeout = errors.New("command timed out")

// newCommand builds a command whose cancellation kills the process tree.
// A nil env inherits the parent's environment.
func newCommand(ctx context.Context, name string, args []string, dir string, env []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if env == nil {
		env = os.Environ()
	}
	cmd.Env = env
	cmd.Cancel = func() error {
		if err := procutil.KillTree(cmd.Process.Pid); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = DefaultWaitDelay
	return cmd
}

// RunWithEnv runs a command with an explicit environment, inheriting stdio.
func RunWithEnv(ctx context.Context, name string, args []string, dir string, env []string) error {
	cmd := newCommand(ctx, name, args, dir, env)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	return wrapErr(ctx, cmd.Run())
}

// OutputWithEnv runs a command with an explicit environment and returns its
// combined stdout and stderr. Output collected before a failure is returned
// alongside the error.
func OutputWithEnv(ctx context.Context, name string, args []string, dir string, env []string) ([]byte, error) {
	cmd := newCommand(ctx, name, args, dir, env)

	output, err := cmd.CombinedOutput()
	return output, wrapErr(ctx, err)
}

// RunWithTimeoutOutput is OutputWithEnv bounded by timeout. A timeout of zero
// or less applies DefaultTimeout. Expiry yields an error matching ErrTimeout.
func RunWithTimeoutOutput(ctx context.Context, name string, args []string, env []string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return OutputWithEnv(ctx, name, args, "", env)
}

func wrapErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("command failed: %w", err)
}
