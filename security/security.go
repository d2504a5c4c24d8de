// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrInvalidPath indicates a path contains invalid characters or patterns.
	ErrInvalidPath = errors.New("invalid path")
	// ErrInvalidToolName indicates an invalid executable name.
	ErrInvalidToolName = errors.New("invalid tool name")

	// toolNamePattern allows alphanumeric start, then alphanumeric, underscore, hyphen, or dot.
	toolNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)
)

// ValidateExecutablePath checks that path can name an executable to launch.
// It must be non-empty, free of NUL bytes, and resolvable to an absolute path.
// The cleaned absolute path is returned.
func ValidateExecutablePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("%w: path contains NUL byte", ErrInvalidPath)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve path: %w", ErrInvalidPath, err)
	}
	if filepath.Base(absPath) == string(filepath.Separator) {
		return "", fmt.Errorf("%w: path names the file system root", ErrInvalidPath)
	}
	return absPath, nil
}

// ValidateToolName checks that name is a bare executable name: no directory
// separators, no list separators, no shell metacharacters.
func ValidateToolName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidToolName)
	}
	if strings.ContainsAny(name, `/\:;`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidToolName, name)
	}
	if !toolNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidToolName, name)
	}
	return nil
}
