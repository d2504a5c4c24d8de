// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathset

import (
	"fmt"
	"os"
	"sync"
)

// EnvPATH is the name of the search-path environment variable.
const EnvPATH = "PATH"

// processMu serializes read-modify-write cycles on the process PATH.
var processMu sync.Mutex

// ProcessPATH returns the inherited PATH of the current process, or "" when unset.
func ProcessPATH() string {
	return os.Getenv(EnvPATH)
}

// AddToProcessPATH adds dir to the process PATH when missing and returns the
// resulting value. Once dir is present the variable is not written again.
func AddToProcessPATH(dir string) (string, error) {
	processMu.Lock()
	defer processMu.Unlock()

	current := ProcessPATH()
	updated := AddIfMissing(current, dir)
	if updated == current {
		return current, nil
	}

	if err := os.Setenv(EnvPATH, updated); err != nil {
		return current, fmt.Errorf("failed to set PATH: %w", err)
	}
	log.Info("added directory to process PATH", "dir", dir)
	return updated, nil
}

// EnhanceProcessPATH applies EnhanceForCommonLocations to the process PATH.
// When nothing qualifies the variable is left as is and false is returned.
func EnhanceProcessPATH(candidates []string) (string, bool, error) {
	processMu.Lock()
	defer processMu.Unlock()

	current := ProcessPATH()
	enhanced, ok := EnhanceForCommonLocations(current, candidates)
	if !ok {
		return current, false, nil
	}

	if err := os.Setenv(EnvPATH, enhanced); err != nil {
		return current, false, fmt.Errorf("failed to set PATH: %w", err)
	}
	return enhanced, true, nil
}
