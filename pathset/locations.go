// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathset

import (
	"os"
	"path/filepath"
	"runtime"
)

// CommonLocations returns bin directories that commonly hold user tools but
// are missing from the PATH of applications started by a desktop session.
// Entries under home are skipped when home is empty.
func CommonLocations(home string) []string {
	if runtime.GOOS == "windows" {
		return windowsLocations(home)
	}

	dirs := []string{
		"/opt/homebrew/bin",
		"/opt/homebrew/sbin",
		"/usr/local/bin",
		"/usr/local/sbin",
		"/home/linuxbrew/.linuxbrew/bin",
	}
	if home == "" {
		return dirs
	}
	return append(dirs,
		filepath.Join(home, ".local", "bin"),
		filepath.Join(home, "bin"),
		filepath.Join(home, ".npm-global", "bin"),
		filepath.Join(home, ".yarn", "bin"),
		filepath.Join(home, ".bun", "bin"),
		filepath.Join(home, ".volta", "bin"),
		filepath.Join(home, ".cargo", "bin"),
		filepath.Join(home, "go", "bin"),
	)
}

func windowsLocations(home string) []string {
	dirs := []string{
		`C:\Program Files\nodejs`,
		filepath.Join(os.Getenv("APPDATA"), "npm"),
	}
	if home == "" {
		return dirs
	}
	return append(dirs,
		filepath.Join(home, "AppData", "Roaming", "npm"),
		filepath.Join(home, ".bun", "bin"),
		filepath.Join(home, "go", "bin"),
	)
}
