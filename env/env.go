// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package env

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// caseInsensitiveKeys is true where environment keys ignore case.
var caseInsensitiveKeys = runtime.GOOS == "windows"

// MapToSlice converts an env map into KEY=VALUE entries sorted by key.
func MapToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)
	return result
}

// SliceToMap converts KEY=VALUE entries into a map, skipping malformed rows.
// Later entries win, matching how a process resolves duplicate keys.
func SliceToMap(envSlice []string) map[string]string {
	result := make(map[string]string, len(envSlice))
	for _, envVar := range envSlice {
		key, value, ok := strings.Cut(envVar, "=")
		if !ok || key == "" {
			continue
		}
		result[key] = value
	}
	return result
}

// Lookup returns the value of key in environ and whether it was present.
// When a key appears more than once the last occurrence wins.
func Lookup(environ []string, key string) (string, bool) {
	value, found := "", false
	for _, envVar := range environ {
		k, v, ok := strings.Cut(envVar, "=")
		if ok && keyEqual(k, key) {
			value, found = v, true
		}
	}
	return value, found
}

// Get returns the value of key in environ, or "" when absent.
func Get(environ []string, key string) string {
	value, _ := Lookup(environ, key)
	return value
}

// Set returns a copy of environ with key set to value. The first matching
// entry is replaced in place, keeping its key spelling, and later entries for
// the same key are dropped. A missing key is appended.
func Set(environ []string, key, value string) []string {
	result := make([]string, 0, len(environ)+1)
	replaced := false
	for _, envVar := range environ {
		k, _, ok := strings.Cut(envVar, "=")
		if !ok || !keyEqual(k, key) {
			result = append(result, envVar)
			continue
		}
		if replaced {
			continue
		}
		result = append(result, k+"="+value)
		replaced = true
	}
	if !replaced {
		result = append(result, key+"="+value)
	}
	return result
}

func keyEqual(a, b string) bool {
	if caseInsensitiveKeys {
		return strings.EqualFold(a, b)
	}
	return a == b
}
