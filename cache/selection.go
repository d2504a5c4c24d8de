// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jongio/toolenv/logutil"
	"github.com/jongio/toolenv/resolver"
)

// selectionVersion is bumped when the selection entry layout changes.
const selectionVersion = "1"

var log = logutil.NewLogger("cache")

// selectionEntry is the cached choice for one tool.
type selectionEntry struct {
	Installation resolver.Installation `json:"installation"`
	SHA256       string                `json:"sha256"`
}

// SelectionCache remembers the installation chosen for a tool.
type SelectionCache struct {
	m *Manager
}

// NewSelectionCache returns a SelectionCache stored in opts.Dir. An empty
// opts.Version uses the built-in entry version.
func NewSelectionCache(opts Options) *SelectionCache {
	if opts.Version == "" {
		opts.Version = selectionVersion
	}
	return &SelectionCache{m: NewManager(opts)}
}

// DefaultDir returns the per-user cache directory for toolenv.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user cache directory: %w", err)
	}
	return filepath.Join(base, "toolenv"), nil
}

// Store records inst as the choice for tool, fingerprinting the binary.
func (c *SelectionCache) Store(tool string, inst resolver.Installation) error {
	sum, err := HashFile(inst.Path)
	if err != nil {
		return fmt.Errorf("failed to fingerprint %s: %w", inst.Path, err)
	}
	return c.m.Set(selectionKey(tool), selectionEntry{Installation: inst, SHA256: sum})
}

// Load returns the cached choice for tool. It reports false when there is no
// valid entry; an entry whose binary vanished or changed is removed.
func (c *SelectionCache) Load(tool string) (resolver.Installation, bool, error) {
	var entry selectionEntry
	ok, err := c.m.Get(selectionKey(tool), &entry)
	if err != nil || !ok {
		return resolver.Installation{}, false, err
	}

	sum, err := HashFile(entry.Installation.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("cached binary is gone", "tool", tool, "path", entry.Installation.Path)
		return resolver.Installation{}, false, c.Invalidate(tool)
	case err != nil:
		return resolver.Installation{}, false, err
	case sum != entry.SHA256:
		log.Debug("cached binary changed", "tool", tool, "path", entry.Installation.Path)
		return resolver.Installation{}, false, c.Invalidate(tool)
	}
	return entry.Installation, true, nil
}

// Invalidate drops the cached choice for tool.
func (c *SelectionCache) Invalidate(tool string) error {
	return c.m.Invalidate(selectionKey(tool))
}

func selectionKey(tool string) string {
	return "selection-" + tool
}
