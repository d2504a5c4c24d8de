// Package fileutil provides the file system probes and atomic writes used by
// toolenv.
//
// # Probes
//
// Exists, IsDir and IsExecutable answer the questions discovery asks about a
// candidate path. StatExecutable reports why a path is not a usable
// executable, so callers can tell "not present" (an fs.ErrNotExist error)
// from "present but unusable" (permission, directory, missing exec bit).
//
// On Unix a file is executable when any of its execute bits is set. On
// Windows the extension decides (.exe, .cmd, .bat, .com).
//
// # Atomic Writes
//
// AtomicWriteJSON writes to a unique temporary file in the target directory,
// syncs it, and renames it into place with a short retry loop, so readers
// never observe a partial file.
package fileutil
