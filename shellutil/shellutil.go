// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jongio/toolenv/logutil"
)

const (
	// shebangPrefix is the expected start of a shebang line ("#!").
	shebangPrefix = "#!"

	// maxShebangLength caps how much of the first line is read.
	maxShebangLength = 512

	// envCommand is the common env wrapper in shebangs (e.g., #!/usr/bin/env bash).
	envCommand = "env"
)

var log = logutil.NewLogger("shellutil")

// Shebang is a parsed "#!" line.
type Shebang struct {
	// Interpreter is the program that runs the script: the path as written
	// for direct shebangs, or the bare name env resolves through PATH.
	Interpreter string
	// Args are the arguments following the interpreter.
	Args []string
	// ViaEnv is true when the line runs the interpreter through env.
	ViaEnv bool
}

// Name returns the base name of the interpreter.
func (s Shebang) Name() string {
	return filepath.Base(s.Interpreter)
}

// ReadShebang reads and parses the shebang line of the file at scriptPath.
// It returns false when the file cannot be read or has no usable shebang.
func ReadShebang(scriptPath string) (Shebang, bool) {
	file, err := os.Open(scriptPath) // #nosec G304 - scriptPath is validated by caller
	if err != nil {
		return Shebang{}, false
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Debug("failed to close file", "path", filepath.Base(scriptPath), "error", closeErr)
		}
	}()

	reader := bufio.NewReader(io.LimitReader(file, maxShebangLength))

	prefix := make([]byte, len(shebangPrefix))
	if _, readErr := io.ReadFull(reader, prefix); readErr != nil || string(prefix) != shebangPrefix {
		return Shebang{}, false
	}

	line, lineErr := reader.ReadString('\n')
	if lineErr != nil && lineErr != io.EOF {
		return Shebang{}, false
	}
	return ParseShebang(line)
}

// ParseShebang parses the text following "#!".
func ParseShebang(line string) (Shebang, bool) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return Shebang{}, false
	}

	if filepath.Base(parts[0]) != envCommand {
		return Shebang{Interpreter: parts[0], Args: parts[1:]}, true
	}

	// Skip env's own options and VAR=value assignments.
	for i := 1; i < len(parts); i++ {
		part := parts[i]
		if strings.HasPrefix(part, "-") || strings.Contains(part, "=") {
			continue
		}
		return Shebang{Interpreter: part, Args: parts[i+1:], ViaEnv: true}, true
	}

	// A bare "#!/usr/bin/env" runs env itself.
	return Shebang{Interpreter: parts[0]}, true
}

// EnvInterpreter returns the interpreter name that an env-style shebang in
// scriptPath resolves through PATH, or "" when the file does not use one.
func EnvInterpreter(scriptPath string) string {
	shebang, ok := ReadShebang(scriptPath)
	if !ok || !shebang.ViaEnv {
		return ""
	}
	return shebang.Interpreter
}
