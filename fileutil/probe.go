// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrIsDirectory indicates a candidate executable path names a directory.
	ErrIsDirectory = errors.New("is a directory")
	// ErrNotExecutable indicates a file exists but cannot be executed.
	ErrNotExecutable = errors.New("not executable")
)

// Exists reports whether path names an existing file system entry.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsExecutable reports whether path is an existing executable file.
func IsExecutable(path string) bool {
	return StatExecutable(path) == nil
}

// StatExecutable returns nil when path is an executable file. A missing path
// yields an error matching fs.ErrNotExist; other failures wrap the stat error,
// ErrIsDirectory or ErrNotExecutable.
func StatExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	if !hasExecMode(path, info) {
		return fmt.Errorf("%s: %w", path, ErrNotExecutable)
	}
	return nil
}
