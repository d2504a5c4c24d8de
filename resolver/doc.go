// Package resolver finds every installed copy of a command-line tool, picks
// the best one, and builds the environment needed to run it.
//
// A tool such as a node-based CLI can be installed several ways at once: by
// the system package manager, under the user's home directory, or through a
// version manager such as nvm or volta. Applications started from a desktop
// session frequently inherit a PATH that includes none of these, so
// exec.LookPath alone is not enough.
//
// # Discovery
//
// Discover probes a fixed, ordered list of conventional locations (see
// DefaultLocations). Every present executable is asked for its version with a
// bounded subprocess; a candidate whose version cannot be determined is kept
// with a nil Version. Per-candidate failures are logged and counted, never
// returned.
//
// # Selection
//
// Select prefers the highest version. Candidates without a version rank below
// all versioned ones, and ties keep probe order, so the result is stable for
// an unchanged file system.
//
// # Execution Environment
//
// BuildExecutionEnvironment prepends the executable's directory (and, for
// env-style scripts, the directory holding their interpreter) to PATH only when
// missing, then deduplicates the result. Repeated builds therefore never grow
// PATH.
//
// # Example Usage
//
//	r := resolver.New(resolver.Options{Tool: "claude"})
//	inst, err := r.Find(ctx)
//	if errors.Is(err, resolver.ErrNotFound) {
//	    // ask the user to install the tool
//	}
//	spec, err := resolver.BuildProcessExecutionEnvironment(inst.Path)
//	cmd := spec.Command(ctx, "--help")
package resolver
