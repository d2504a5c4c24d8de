// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package resolver

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/jongio/toolenv/pathset"
)

// Location is one directory probed for the tool.
type Location struct {
	Dir  string      `json:"dir"`
	Kind InstallKind `json:"kind"`
}

// DefaultLocations returns the conventional install directories in probe
// order: system bin directories, then user-local directories, then version
// manager directories. Directories under home are omitted when home is empty.
// Version manager globs are expanded at call time and sorted.
func DefaultLocations(home string) []Location {
	if runtime.GOOS == "windows" {
		return windowsLocations(home)
	}

	locs := []Location{
		{Dir: "/usr/local/bin", Kind: KindDirect},
		{Dir: "/usr/bin", Kind: KindDirect},
		{Dir: "/bin", Kind: KindDirect},
		{Dir: "/opt/homebrew/bin", Kind: KindDirect},
		{Dir: "/home/linuxbrew/.linuxbrew/bin", Kind: KindDirect},
	}
	if home == "" {
		return locs
	}

	for _, dir := range [][]string{
		{".local", "bin"},
		{"bin"},
		{".npm-global", "bin"},
		{".yarn", "bin"},
		{".bun", "bin"},
		{"node_modules", ".bin"},
		{".claude", "local"},
	} {
		locs = append(locs, Location{Dir: filepath.Join(append([]string{home}, dir...)...), Kind: KindUserLocal})
	}

	locs = append(locs, Location{Dir: filepath.Join(home, ".nvm", "current", "bin"), Kind: KindVersionManager})
	for _, dir := range globDirs(filepath.Join(home, ".nvm", "versions", "node", "*", "bin")) {
		locs = append(locs, Location{Dir: dir, Kind: KindVersionManager})
	}
	for _, dir := range [][]string{
		{".volta", "bin"},
		{".asdf", "shims"},
		{".local", "share", "mise", "shims"},
		{".fnm", "aliases", "default", "bin"},
	} {
		locs = append(locs, Location{Dir: filepath.Join(append([]string{home}, dir...)...), Kind: KindVersionManager})
	}
	return locs
}

func windowsLocations(home string) []Location {
	var locs []Location
	if pf := os.Getenv("ProgramFiles"); pf != "" {
		locs = append(locs, Location{Dir: filepath.Join(pf, "nodejs"), Kind: KindDirect})
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		locs = append(locs, Location{Dir: filepath.Join(appData, "npm"), Kind: KindUserLocal})
	}
	if home != "" {
		locs = append(locs,
			Location{Dir: filepath.Join(home, ".local", "bin"), Kind: KindUserLocal},
			Location{Dir: filepath.Join(home, ".bun", "bin"), Kind: KindUserLocal},
			Location{Dir: filepath.Join(home, "scoop", "shims"), Kind: KindUserLocal},
		)
	}
	if nvmSymlink := os.Getenv("NVM_SYMLINK"); nvmSymlink != "" {
		locs = append(locs, Location{Dir: nvmSymlink, Kind: KindVersionManager})
	}
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		locs = append(locs, Location{Dir: filepath.Join(localAppData, "Volta", "bin"), Kind: KindVersionManager})
	}
	return locs
}

// globDirs returns the existing matches of pattern in lexical order.
func globDirs(pattern string) []string {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}
	slices.Sort(matches)
	return matches
}

// dedupeLocations drops locations whose directory identity was already seen.
// The first occurrence, with its kind, wins.
func dedupeLocations(locs []Location) []Location {
	seen := make(map[string]bool, len(locs))
	result := make([]Location, 0, len(locs))
	for _, loc := range locs {
		if loc.Dir == "" {
			continue
		}
		id := pathset.Identity(loc.Dir)
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, loc)
	}
	return result
}

// candidateNames returns the file names the tool may have in a directory.
func candidateNames(tool string) []string {
	if runtime.GOOS == "windows" {
		return []string{tool + ".exe", tool + ".cmd", tool + ".bat"}
	}
	return []string{tool}
}
