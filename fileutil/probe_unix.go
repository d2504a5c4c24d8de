//go:build !windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import "os"

// hasExecMode checks for any execute permission bit.
func hasExecMode(_ string, info os.FileInfo) bool {
	return info.Mode()&0111 != 0
}
