// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package pathset treats a search-path value (PATH) as an ordered set of
// directory identities.
//
// Two segments are the same directory when their identities match. The
// identity of a segment is its text with trailing separators removed, or,
// when the directory exists, its absolute symlink-resolved form. Identity
// comparison is best-effort and is not a security boundary.
//
// # Pure Functions
//
// ContainsDirectory, AddIfMissing, Deduplicate and EnhanceForCommonLocations
// take the search path as an explicit argument and return new values. They
// hold no state and are safe for concurrent use.
//
//	p := pathset.AddIfMissing(os.Getenv("PATH"), "/opt/tool/bin")
//	p = pathset.AddIfMissing(p, "/opt/tool/bin") // unchanged
//	p = pathset.Deduplicate(p)
//
// # Process Boundary
//
// ProcessPATH, AddToProcessPATH and EnhanceProcessPATH are the only functions
// that read or write the process-wide PATH variable. Writes are serialized by
// a package mutex and are skipped once the directory is already present, so
// calling them once per process launch never grows PATH.
//
// # Existing Duplicates
//
// AddIfMissing never rewrites entries that are already present, even when
// two of them share an identity. Collapsing them is Deduplicate's job.
package pathset
