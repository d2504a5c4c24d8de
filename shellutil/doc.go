// Package shellutil reads shebang lines from script executables.
//
// Package managers often install a tool as a script whose first line names
// its interpreter, for example an npm shim:
//
//	#!/usr/bin/env node
//
// Running such a script needs the interpreter to be reachable through PATH,
// which is not guaranteed when the script was found outside PATH. ReadShebang
// parses the line and EnvInterpreter reports the program name that env will
// look up.
//
// # Shebang Parsing
//
//   - #!/bin/bash → Interpreter "/bin/bash", not via env
//   - #!/usr/bin/env node → Interpreter "node", via env
//   - #!/usr/bin/env -S node --no-warnings → Interpreter "node", via env
//   - #! /bin/sh -e (with space) → Interpreter "/bin/sh", Args ["-e"]
//
// Only the first line is examined and it is capped in length, so binaries
// without a shebang are rejected after a few bytes.
package shellutil
