//go:build windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// hasExecMode decides by extension since Windows has no execute bit.
func hasExecMode(path string, _ os.FileInfo) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".exe", ".cmd", ".bat", ".com":
		return true
	default:
		return false
	}
}
