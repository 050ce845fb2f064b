// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"

	"github.com/jeranaias/gsearch-tui/internal/api"
	"github.com/jeranaias/gsearch-tui/internal/feed"
)

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

// Defaults builds the registry of built-in commands. An invalid builtin
// set is a programming error, surfaced at startup.
func Defaults() (*Registry, error) {
	r := NewRegistry()
	builtins := []*Command{
		{
			Name:        "help",
			Shortcut:    "h",
			Description: "list available commands",
			Usage:       "/help",
			Run:         handleHelp,
		},
		{
			Name:        "search",
			Shortcut:    "s",
			Description: "search the web",
			Usage:       "/search <query>",
			Run:         handleSearch,
		},
		{
			Name:        ChatCommand,
			Description: "chat with the assistant",
			Usage:       "/chat <message>",
			Hidden:      true,
			Run:         handleChat,
		},
		{
			Name:        "reset",
			Shortcut:    "clear",
			Description: "clear the feed and conversation",
			Usage:       "/reset",
			Run:         handleReset,
		},
		{
			Name:        "model",
			Shortcut:    "m",
			Description: "show or set the chat model",
			Usage:       "/model [name]",
			Run:         forwarded("model"),
		},
		{
			Name:        "models",
			Description: "list available chat models",
			Usage:       "/models",
			Run:         handleModels,
		},
		{
			Name:        "prompt",
			Shortcut:    "p",
			Description: "show or set the system prompt",
			Usage:       "/prompt [text]",
			Run:         forwarded("prompt"),
		},
		{
			Name:        "uptime",
			Shortcut:    "u",
			Description: "show server uptime",
			Usage:       "/uptime",
			Run:         forwarded("uptime"),
		},
		{
			Name:        "bookmarks",
			Shortcut:    "b",
			Description: "list saved bookmarks",
			Usage:       "/bookmarks",
			Run:         handleBookmarks,
		},
	}
	for _, cmd := range builtins {
		if err := r.Register(cmd); err != nil {
			return nil, fmt.Errorf("invalid builtin registry: %w", err)
		}
	}
	return r, nil
}

// handleHelp renders the command table locally; the server is never
// consulted.
func handleHelp(_ context.Context, env Env, _ string) Result {
	rows := make([][]string, 0)
	for _, cmd := range env.Registry.Visible() {
		shortcut := ""
		if cmd.Shortcut != "" {
			shortcut = "/" + cmd.Shortcut
		}
		rows = append(rows, []string{"/" + cmd.Name, shortcut, cmd.Description})
	}
	return Result{Entries: []feed.Entry{feed.TableEntry([]string{"command", "shortcut", "description"}, rows)}}
}

func handleSearch(_ context.Context, _ Env, args string) Result {
	if args == "" {
		return Result{Entries: []feed.Entry{feed.ErrorEntry("usage: /search <query>")}}
	}
	return Result{StartQuery: args}
}

// handleChat sends the history plus the new message through the
// server-side chat command. The dispatcher has already rendered the
// user's turn; the history snapshot excludes it because the server
// appends the new turn itself.
func handleChat(ctx context.Context, env Env, args string) Result {
	if args == "" {
		return Result{Entries: []feed.Entry{feed.ErrorEntry("usage: /chat <message>")}}
	}
	resp, err := env.Client.Chat(ctx, args, env.History)
	if err != nil {
		return Result{Err: fmt.Errorf("chat: %w", err)}
	}
	if resp.Data == "" {
		return Result{Err: fmt.Errorf("chat: empty reply")}
	}
	return Result{Entries: []feed.Entry{feed.ChatEntry(api.RoleSystem, resp.Data, resp.Markdown)}}
}

func handleReset(_ context.Context, _ Env, _ string) Result {
	return Result{Reset: true}
}

// forwarded builds a handler that passes the command through to the
// server verbatim and renders whatever comes back under its markdown
// flag.
func forwarded(name string) Handler {
	return func(ctx context.Context, env Env, args string) Result {
		resp, err := env.Client.Command(ctx, name, args, env.History)
		if err != nil {
			return Result{Err: fmt.Errorf("%s: %w", name, err)}
		}
		if resp.Data == "" {
			return Result{}
		}
		return Result{Entries: []feed.Entry{feed.TextEntry(resp.Data, resp.Markdown)}}
	}
}

// handleModels lists the models the server can chat with. An empty list
// renders nothing; a failed fetch is logged and renders nothing.
func handleModels(ctx context.Context, env Env, _ string) Result {
	models, err := env.Client.Models(ctx)
	if err != nil {
		return Result{Err: fmt.Errorf("models: %w", err)}
	}
	if len(models) == 0 {
		return Result{}
	}
	return Result{Entries: []feed.Entry{feed.ListEntry(models)}}
}

// handleBookmarks lists saved bookmarks. Editing stays on the server's
// own UI; add/rem from here just explain that.
func handleBookmarks(ctx context.Context, env Env, args string) Result {
	if args != "" {
		return Result{Entries: []feed.Entry{feed.BannerEntry("bookmark editing is not available from the terminal client")}}
	}
	bookmarks, err := env.Client.Bookmarks(ctx)
	if err != nil {
		return Result{Err: fmt.Errorf("bookmarks: %w", err)}
	}
	if len(bookmarks) == 0 {
		return Result{Entries: []feed.Entry{feed.BannerEntry("no bookmarks saved")}}
	}
	rows := make([][]string, len(bookmarks))
	for i, b := range bookmarks {
		rows[i] = []string{b.Name, b.Shortcut, b.URL}
	}
	return Result{Entries: []feed.Entry{feed.TableEntry([]string{"name", "shortcut", "url"}, rows)}}
}

// UnknownEntry is the feed entry for an unresolved command name.
func UnknownEntry(name string) feed.Entry {
	return feed.ErrorEntry(fmt.Sprintf("Unknown command `/%s`", name))
}
