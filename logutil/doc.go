// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides the structured logger shared by toolenv packages.
//
// It wraps log/slog with a process-wide logger and component-scoped loggers.
// Library packages never configure logging themselves; the host (or the
// toolenv CLI) calls SetupLogger once.
//
//	logutil.SetupLogger(debug, structured)
//	log := logutil.NewLogger("resolver").WithTool("claude")
//	log.Debug("probing candidate", "path", candidate)
//
// Debug output is enabled by SetupLogger(true, ...) or TOOLENV_DEBUG=true.
// Structured mode emits JSON lines, otherwise slog's text format is used.
package logutil
