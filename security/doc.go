// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package security validates the caller-supplied strings that end up in a
// child process launch: executable paths and tool names.
//
// Validation rejects malformed input early (empty values, NUL bytes, path
// separators in a bare tool name). It does not sandbox anything; a valid
// executable path is still run with the caller's privileges.
package security
