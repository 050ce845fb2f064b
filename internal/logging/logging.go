// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the diagnostic log for gsearch-tui.
//
// The TUI owns stdout and stderr, so failures that are swallowed at the
// UI layer (network errors, malformed responses, discarded stale pages)
// are recorded here instead. The log lives alongside the config file and
// rotates so it never grows unbounded.
package logging

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = log.New(io.Discard, "", 0)

// Setup directs the diagnostic log to <dir>/gsearch-tui.log with rotation.
// Before Setup is called all log output is discarded, which keeps tests
// and one-shot invocations quiet.
func Setup(dir string) {
	logger = log.New(&lumberjack.Logger{
		Filename:   filepath.Join(dir, "gsearch-tui.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}, "", log.LstdFlags|log.Lmicroseconds)
}

// SetOutput redirects the log, primarily for tests.
func SetOutput(w io.Writer) {
	logger = log.New(w, "", 0)
}

// Infof records an informational event.
func Infof(format string, args ...any) {
	logger.Output(2, "INFO "+fmt.Sprintf(format, args...))
}

// Errorf records a failure that was handled and swallowed.
func Errorf(format string, args ...any) {
	logger.Output(2, "ERROR "+fmt.Sprintf(format, args...))
}
