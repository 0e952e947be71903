/*******************************************************************************
*
* Copyright 2026 The ENDF Ingest Authors
*
* Licensed under the Apache License, Version 2.0 (the "License");
* you may not use this file except in compliance with the License.
* You may obtain a copy of the License at
*
*     http://www.apache.org/licenses/LICENSE-2.0
*
*******************************************************************************/

// Package logging prints colored progress and error messages to stderr,
// generalizing the teacher's showError/ShowWarning ANSI-escape
// convention (src/holo-build/main.go, src/holo-build/util.go) to a
// third Info level for the per-tape/per-material progress lines this
// program needs that the teacher, a one-shot build tool, never did.
package logging

import (
	"fmt"
	"os"
)

// Error prints an error message on stderr, prefixed the way the
// teacher's showError marks a hard failure.
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "\x1b[31m\x1b[1m!!\x1b[0m %s\n", fmt.Sprintf(format, args...))
}

// Warn prints a warning on stderr, prefixed the way the teacher's
// ShowWarning marks a recoverable problem.
func Warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "\x1b[33m\x1b[1m>>\x1b[0m %s\n", fmt.Sprintf(format, args...))
}

// Info prints a progress message on stderr.
func Info(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "\x1b[36m\x1b[1m::\x1b[0m %s\n", fmt.Sprintf(format, args...))
}
