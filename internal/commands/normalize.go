// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// Invocation is the canonical form every input line is reduced to before
// dispatch. Bare text becomes exactly one implicit /chat hop; an implicit
// invocation is never re-normalized.
type Invocation struct {
	Raw      string // the input as typed, trimmed
	Name     string // command name without the leading slash
	Args     string // remainder, trimmed, interior spacing preserved
	Implicit bool   // true when rewritten from bare text
}

// ChatCommand is the target of the implicit rewrite.
const ChatCommand = "chat"

// Normalize reduces one input line to an Invocation. Blank input and a
// bare "/" produce ok=false and nothing is dispatched.
func Normalize(input string) (Invocation, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Invocation{}, false
	}

	if !strings.HasPrefix(trimmed, "/") {
		return Invocation{
			Raw:      trimmed,
			Name:     ChatCommand,
			Args:     trimmed,
			Implicit: true,
		}, true
	}

	rest := trimmed[1:]
	if rest == "" {
		return Invocation{}, false
	}

	name := rest
	args := ""
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		name = rest[:i]
		args = strings.TrimSpace(rest[i+1:])
	}
	return Invocation{Raw: trimmed, Name: name, Args: args}, true
}

// IsCommand reports whether the input would dispatch as an explicit
// slash command rather than an implicit chat line.
func IsCommand(input string) bool {
	trimmed := strings.TrimSpace(input)
	return strings.HasPrefix(trimmed, "/") && len(trimmed) > 1
}
