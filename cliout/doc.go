// Package cliout provides output formatting for the toolenv CLI.
//
// # Features
//
//   - Two output formats: human-readable text and JSON
//   - ANSI colors only when stdout is a terminal (golang.org/x/term) and
//     NO_COLOR is unset
//   - Unicode symbols with ASCII fallbacks for legacy Windows consoles
//   - Aligned tables and label/value pairs
//
// # Basic Usage
//
//	cliout.Success("Found %d installations", n)
//	cliout.Warning("%s has no version", path)
//
// # Output Formats
//
//	if err := cliout.SetFormat("json"); err != nil {
//	    return err
//	}
//	return cliout.Print(installs, func() {
//	    cliout.Table(headers, rows)
//	})
//
// Print writes JSON in json mode and calls the formatter otherwise, so each
// command builds one data value and one human rendering of it.
//
// All output goes to os.Stdout, resolved at call time.
package cliout
