// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package resolver

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
)

// versionPattern matches "version: MAJOR.MINOR.PATCH" with an optional
// "-label" suffix. The label is matched so it is consumed, then discarded.
var versionPattern = regexp.MustCompile(`(?i)version:\s*(\d+)\.(\d+)\.(\d+)(?:-[0-9A-Za-z.-]+)?`)

// Version is a semantic release number without pre-release label.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// ParseVersion scans text for the first "version: X.Y.Z" occurrence.
// It returns false when no occurrence exists or a component overflows int.
func ParseVersion(text string) (Version, bool) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return Version{}, false
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Version{}, false
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, true
}

// Compare returns -1, 0 or +1 ordering v against other by major, minor, patch.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, other.Patch)
}

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// String returns the "MAJOR.MINOR.PATCH" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
