// Package env provides helpers for KEY=VALUE environment lists such as the
// ones returned by os.Environ and accepted by exec.Cmd.Env.
//
// Key comparison follows the platform: case-sensitive on Unix and
// case-insensitive on Windows, where the search path is usually spelled
// "Path". Set keeps the spelling of an existing key so a child process sees
// exactly one search-path variable.
//
//	environ := os.Environ()
//	path := env.Get(environ, "PATH")
//	environ = env.Set(environ, "PATH", "/opt/tool/bin"+string(os.PathListSeparator)+path)
//
// The slice helpers never modify their input; they return a new slice.
package env
