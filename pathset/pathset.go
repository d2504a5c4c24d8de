// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jongio/toolenv/fileutil"
	"github.com/jongio/toolenv/logutil"
	"github.com/jongio/toolenv/metrics"
)

// Separator is the platform search-path list separator.
const Separator = string(os.PathListSeparator)

// trailingSeparators are stripped from segments before comparison.
const trailingSeparators = "/" + string(filepath.Separator)

var log = logutil.NewLogger("pathset")

// Identity returns the normalized identity of a directory string.
// Trailing separators are removed (a path made only of separators keeps one).
// If the result exists on disk, its absolute symlink-resolved form is returned.
// Empty input yields "".
func Identity(dir string) string {
	if dir == "" {
		return ""
	}

	trimmed := strings.TrimRight(dir, trailingSeparators)
	if trimmed == "" {
		trimmed = dir[:1]
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return trimmed
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return trimmed
	}
	return resolved
}

// Split returns the non-empty segments of a search path in order.
func Split(searchPath string) []string {
	if searchPath == "" {
		return nil
	}
	parts := strings.Split(searchPath, Separator)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// ContainsDirectory reports whether any segment of searchPath has the same
// identity as dir. An empty search path or directory contains nothing.
func ContainsDirectory(searchPath, dir string) bool {
	if searchPath == "" || dir == "" {
		return false
	}
	want := Identity(dir)
	for _, segment := range Split(searchPath) {
		if Identity(segment) == want {
			return true
		}
	}
	return false
}

// AddIfMissing prepends dir to searchPath unless a segment with the same
// identity is already present, in which case searchPath is returned
// unchanged. Repeated calls with the same dir are therefore no-ops.
func AddIfMissing(searchPath, dir string) string {
	if dir == "" {
		return searchPath
	}
	if ContainsDirectory(searchPath, dir) {
		log.Debug("directory already in search path", "dir", dir)
		return searchPath
	}
	if searchPath == "" {
		return dir
	}
	return dir + Separator + searchPath
}

// Deduplicate keeps the first segment of each identity, in order, in its
// original textual form. Empty segments are dropped.
func Deduplicate(searchPath string) string {
	segments := Split(searchPath)
	if len(segments) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(segments))
	unique := make([]string, 0, len(segments))
	for _, segment := range segments {
		id := Identity(segment)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, segment)
	}
	return strings.Join(unique, Separator)
}

// EnhanceForCommonLocations prepends, in input order, every candidate that
// exists on disk and is not already in searchPath, then deduplicates the
// result. It returns false when no candidate qualifies; callers must keep
// their current value in that case.
func EnhanceForCommonLocations(searchPath string, candidates []string) (string, bool) {
	var added []string
	for _, dir := range candidates {
		if dir == "" || !fileutil.Exists(dir) {
			continue
		}
		if ContainsDirectory(searchPath, dir) {
			continue
		}
		added = append(added, dir)
	}

	if len(added) == 0 {
		metrics.RecordEnhancement(false)
		return "", false
	}
	metrics.RecordEnhancement(true)

	log.Info("enhanced search path", "added", strings.Join(added, Separator))
	if searchPath != "" {
		added = append(added, searchPath)
	}
	return Deduplicate(strings.Join(added, Separator)), true
}
