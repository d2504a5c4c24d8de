// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"errors"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/process"
)

// IsProcessRunning checks if a process with the given PID is running.
// Invalid PIDs and lookup failures report false.
func IsProcessRunning(pid int) bool {
	if pid <= 0 || pid > math.MaxInt32 {
		return false
	}

	exists, err := process.PidExists(int32(pid))
	if err != nil {
		return false
	}
	return exists
}

// KillTree kills the process with the given PID and all of its descendants.
// Descendants are listed before anything is killed, then the root goes
// first so a parent script cannot react to a dying child and keep running.
// A process that has already exited is not an error.
func KillTree(pid int) error {
	if pid <= 0 || pid > math.MaxInt32 {
		return fmt.Errorf("invalid pid %d", pid)
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return nil
		}
		return fmt.Errorf("failed to open process %d: %w", pid, err)
	}

	descendants, errs := listDescendants(p)
	for _, proc := range append([]*process.Process{p}, descendants...) {
		if err := proc.Kill(); err != nil && !isGone(proc) {
			errs = append(errs, fmt.Errorf("failed to kill process %d: %w", proc.Pid, err))
		}
	}
	return errors.Join(errs...)
}

// listDescendants returns every descendant of p, parents before children.
func listDescendants(p *process.Process) ([]*process.Process, []error) {
	var (
		all  []*process.Process
		errs []error
	)
	queue := []*process.Process{p}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := current.Children()
		if err != nil && !errors.Is(err, process.ErrorNoChildren) && !errors.Is(err, process.ErrorProcessNotRunning) {
			errs = append(errs, fmt.Errorf("failed to list children of %d: %w", current.Pid, err))
		}
		all = append(all, children...)
		queue = append(queue, children...)
	}
	return all, errs
}

// isGone reports whether p exited on its own before Kill reached it.
func isGone(p *process.Process) bool {
	return !IsProcessRunning(int(p.Pid))
}
