// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/jongio/toolenv/fileutil"
)

// Options configures a cache Manager.
type Options struct {
	Dir     string        // directory holding one JSON file per key
	TTL     time.Duration // zero never expires
	Version string        // entries written under another version are ignored
}

// entry is the on-disk layout of one key.
type entry struct {
	StoredAt time.Time       `json:"storedAt"`
	Version  string          `json:"version,omitempty"`
	Value    json.RawMessage `json:"value"`
}

func (e entry) fresh(ttl time.Duration, version string) bool {
	if version != "" && e.Version != version {
		return false
	}
	return ttl <= 0 || time.Since(e.StoredAt) <= ttl
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_\-.]`)

// Manager stores JSON values in files, one per key, guarded by a RWMutex.
type Manager struct {
	opts Options
	mu   sync.RWMutex
}

// NewManager creates a new cache manager.
func NewManager(opts Options) *Manager {
	return &Manager{opts: opts}
}

// Get decodes the value stored under key into target. It returns false
// without error when the entry is missing, stale or from another version.
func (m *Manager) Get(key string, target any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var e entry
	found, err := fileutil.ReadJSON(m.path(key), &e)
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry %q: %w", key, err)
	}
	if !found || !e.fresh(m.opts.TTL, m.opts.Version) {
		return false, nil
	}
	if err := json.Unmarshal(e.Value, target); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key, replacing any previous entry atomically.
func (m *Manager) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %q: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := fileutil.EnsureDir(m.opts.Dir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return fileutil.AtomicWriteJSON(m.path(key), entry{
		StoredAt: time.Now(),
		Version:  m.opts.Version,
		Value:    raw,
	})
}

// Invalidate removes the entry for key. A missing entry is not an error.
func (m *Manager) Invalidate(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.Remove(m.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache entry %q: %w", key, err)
	}
	return nil
}

func (m *Manager) path(key string) string {
	return filepath.Join(m.opts.Dir, sanitizeKey(key)+".json")
}

// sanitizeKey maps a key onto a safe file name.
func sanitizeKey(key string) string {
	return unsafeKeyChars.ReplaceAllString(key, "_")
}

// HashFile computes the hex SHA-256 of a file. Open errors are wrapped, so a
// missing file matches fs.ErrNotExist.
func HashFile(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- caller controls the path
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
