// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the slash-command router.
//
// Dispatch is case-sensitive exact match on a command's name or shortcut;
// "/Help" is an unknown command even though "/help" exists. The registry
// is validated when it is built: a duplicate name or shortcut is a
// programming error and fails startup rather than shadowing a command at
// dispatch time.
package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/jeranaias/gsearch-tui/internal/api"
	"github.com/jeranaias/gsearch-tui/internal/feed"
)

// Env carries what a handler needs to run. History is a snapshot taken
// at dispatch, before the new user turn is appended to the feed.
type Env struct {
	Client   *api.Client
	Registry *Registry
	History  []api.ChatMessage
}

// Result is what a handler produced. Entries are appended to the feed in
// order. Err is logged by the dispatcher and never rendered verbatim.
type Result struct {
	Entries    []feed.Entry
	StartQuery string // non-empty: begin a new query session for this query
	Reset      bool   // clear the feed and issue a new session token
	Err        error
}

// Handler executes one command. Handlers that talk to the server perform
// exactly one request attempt.
type Handler func(ctx context.Context, env Env, args string) Result

// Command is one registered slash command.
type Command struct {
	Name        string // without the leading slash
	Shortcut    string // optional alternate name, also matched exactly
	Description string
	Usage       string
	Hidden      bool // dispatches normally but omitted from /help
	Run         Handler
}

// Registry maps command names and shortcuts to commands.
type Registry struct {
	commands map[string]*Command // name -> command
	lookup   map[string]*Command // name and shortcut -> command
	order    []string            // registration order, for /help
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		lookup:   make(map[string]*Command),
	}
}

// Register adds a command. A name or shortcut that collides with any
// already-registered name or shortcut is rejected.
func (r *Registry) Register(cmd *Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command with empty name")
	}
	if _, exists := r.lookup[cmd.Name]; exists {
		return fmt.Errorf("duplicate command name %q", cmd.Name)
	}
	if cmd.Shortcut != "" {
		if _, exists := r.lookup[cmd.Shortcut]; exists {
			return fmt.Errorf("command %q: duplicate shortcut %q", cmd.Name, cmd.Shortcut)
		}
	}
	r.commands[cmd.Name] = cmd
	r.lookup[cmd.Name] = cmd
	if cmd.Shortcut != "" {
		r.lookup[cmd.Shortcut] = cmd
	}
	r.order = append(r.order, cmd.Name)
	return nil
}

// Resolve finds the command for an invocation name. Matching is exact and
// case-sensitive.
func (r *Registry) Resolve(name string) (*Command, bool) {
	cmd, ok := r.lookup[name]
	return cmd, ok
}

// Visible returns the non-hidden commands in registration order.
func (r *Registry) Visible() []*Command {
	out := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		if cmd := r.commands[name]; !cmd.Hidden {
			out = append(out, cmd)
		}
	}
	return out
}

// Names returns every registered name and shortcut, sorted. Used for
// input completion.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.lookup))
	for name := range r.lookup {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
