// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cliout

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// Unicode symbols for modern CLI output
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
)

// ASCII fallback symbols for terminals that don't support Unicode
const (
	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
	ASCIIArrow   = "->"
)

var (
	mu           sync.RWMutex
	globalFormat = FormatDefault
	// colorMode is nil for auto-detection, otherwise forced on or off.
	colorMode *bool
)

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	on := true
	mu.Lock()
	colorMode = &on
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	off := false
	mu.Lock()
	colorMode = &off
	mu.Unlock()
}

// AutoColor restores terminal-based color detection.
func AutoColor() {
	mu.Lock()
	colorMode = nil
	mu.Unlock()
}

// colorEnabled reports whether ANSI sequences should be written to stdout.
func colorEnabled() bool {
	mu.RLock()
	mode := colorMode
	mu.RUnlock()
	if mode != nil {
		return *mode
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
}

// paint wraps text in an ANSI style when color is enabled.
func paint(style, text string) string {
	if !colorEnabled() {
		return text
	}
	return style + text + Reset
}

// supportsUnicode detects if the terminal supports Unicode symbols.
var supportsUnicode = detectUnicodeSupport()

func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// Windows Terminal, VS Code, ConEmu and PowerShell render Unicode; the
	// legacy console does not.
	for _, key := range []string{"WT_SESSION", "ConEmuPID", "PSModulePath", "TERM"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return os.Getenv("TERM_PROGRAM") == "vscode"
}

func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	mu.Lock()
	defer mu.Unlock()
	switch format {
	case "default", "":
		globalFormat = FormatDefault
	case "json":
		globalFormat = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
	return nil
}

// GetFormat returns the current output format.
func GetFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	return GetFormat() == FormatJSON
}

// PrintJSON prints data as indented JSON to stdout.
func PrintJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Print outputs data in the configured format.
// For default format, uses the formatter function.
// For JSON format, marshals the data object.
func Print(data interface{}, formatter func()) error {
	if IsJSON() {
		return PrintJSON(data)
	}
	formatter()
	return nil
}

// Header prints a bold header with a divider
func Header(text string) {
	fmt.Printf("\n%s\n", paint(Bold, text))
	fmt.Println(strings.Repeat("=", utf8.RuneCountInString(text)))
}

// Success prints a success message with a check mark.
func Success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", paint(Green, getIcon(SymbolCheck, ASCIICheck)), fmt.Sprintf(format, args...))
}

// Error prints an error message with a cross.
func Error(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", paint(Red, getIcon(SymbolCross, ASCIICross)), fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func Warning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", paint(Yellow, getIcon(SymbolWarning, ASCIIWarning)), fmt.Sprintf(format, args...))
}

// Info prints an informational message.
func Info(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", paint(Blue, getIcon(SymbolInfo, ASCIIInfo)), fmt.Sprintf(format, args...))
}

// Hint prints indented follow-up suggestions.
func Hint(hints ...string) {
	for _, hint := range hints {
		fmt.Printf("   %s %s\n", paint(Gray, getIcon(SymbolArrow, ASCIIArrow)), paint(Gray, hint))
	}
}

// Plain prints unstyled text followed by a newline.
func Plain(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Label prints a label and value pair
func Label(label, value string) {
	fmt.Printf("   %s %s\n", paint(Dim, fmt.Sprintf("%-12s", label+":")), value)
}

// Highlight returns text styled for emphasis.
func Highlight(format string, args ...interface{}) string {
	return paint(Bold+Cyan, fmt.Sprintf(format, args...))
}

// Muted returns dimmed text.
func Muted(format string, args ...interface{}) string {
	return paint(Dim, fmt.Sprintf(format, args...))
}

// TableRow represents a row in a table as a map of column header to value.
type TableRow map[string]string

// Table prints a table with the given headers and rows. Column widths count
// runes so Unicode values stay aligned.
func Table(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make(map[string]int, len(headers))
	for _, header := range headers {
		widths[header] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for _, header := range headers {
			widths[header] = max(widths[header], utf8.RuneCountInString(row[header]))
		}
	}

	var b strings.Builder
	b.WriteString("   ")
	for _, header := range headers {
		b.WriteString(paint(Bold, pad(header, widths[header])) + "  ")
	}
	fmt.Println(strings.TrimRight(b.String(), " "))

	b.Reset()
	b.WriteString("   ")
	for _, header := range headers {
		b.WriteString(strings.Repeat("─", widths[header]) + "  ")
	}
	fmt.Println(strings.TrimRight(b.String(), " "))

	for _, row := range rows {
		b.Reset()
		b.WriteString("   ")
		for _, header := range headers {
			b.WriteString(pad(row[header], widths[header]) + "  ")
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}
