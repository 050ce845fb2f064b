// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the plain-terminal REPL mode for gsearch-tui.
//
// The REPL drives the same command registry as the TUI, so behavior is
// identical: the only differences are line-at-a-time input and the lack
// of scroll-triggered paging.
package cli

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether both stdin and stdout are terminals.
// Piped invocations get plain output with no prompt handling.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
