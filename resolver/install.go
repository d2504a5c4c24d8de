// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package resolver

import "fmt"

// InstallKind identifies how a discovered copy was installed. It is used for
// diagnostics only; selection relies on version and probe order.
type InstallKind int

const (
	// KindDirect is a system-wide install in a standard bin directory.
	KindDirect InstallKind = iota
	// KindUserLocal is an install under the user's home directory.
	KindUserLocal
	// KindVersionManager is an install managed by nvm, volta, asdf, mise or fnm.
	KindVersionManager
	// KindBundled is a copy shipped next to the host application.
	KindBundled
)

// String returns the kind's stable name.
func (k InstallKind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindUserLocal:
		return "user-local"
	case KindVersionManager:
		return "version-manager"
	case KindBundled:
		return "bundled"
	}
	return fmt.Sprintf("InstallKind(%d)", int(k))
}

// ParseInstallKind is the inverse of String.
func ParseInstallKind(s string) (InstallKind, error) {
	for _, k := range []InstallKind{KindDirect, KindUserLocal, KindVersionManager, KindBundled} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown install kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k InstallKind) MarshalText() ([]byte, error) {
	switch k {
	case KindDirect, KindUserLocal, KindVersionManager, KindBundled:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown install kind %d", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *InstallKind) UnmarshalText(text []byte) error {
	parsed, err := ParseInstallKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Installation is one discovered copy of the tool.
type Installation struct {
	Path    string      `json:"path"`
	Version *Version    `json:"version,omitempty"`
	Kind    InstallKind `json:"kind"`
}

// HasVersion reports whether the copy's version was determined.
func (i Installation) HasVersion() bool {
	return i.Version != nil
}

// VersionString returns the version, or "unknown" when it is absent.
func (i Installation) VersionString() string {
	if i.Version == nil {
		return "unknown"
	}
	return i.Version.String()
}
