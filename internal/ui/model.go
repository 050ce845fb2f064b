// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the gsearch terminal interface.
//
// The model owns the feed log, the paging loader, and the command
// registry. Commands execute one at a time: input submitted while a
// command is in flight is ignored. Page fetches run independently of
// command execution and are reconciled through session tokens.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gsearch-tui/internal/api"
	"github.com/jeranaias/gsearch-tui/internal/commands"
	"github.com/jeranaias/gsearch-tui/internal/config"
	"github.com/jeranaias/gsearch-tui/internal/feed"
	"github.com/jeranaias/gsearch-tui/internal/render"
	"github.com/jeranaias/gsearch-tui/internal/ui/styles"
)

// State is the command execution state.
type State int

const (
	// StateReady accepts new input.
	StateReady State = iota
	// StateBusy has a command in flight; input submission is ignored.
	StateBusy
)

// Layout constants.
const (
	headerHeight = 1
	footerHeight = 3
	minViewportH = 3

	// scroll position past which the next page is requested
	autoloadThreshold = 0.85
)

// Model is the root Bubble Tea model.
type Model struct {
	client   *api.Client
	registry *commands.Registry
	renderer *render.Renderer
	theme    *styles.Theme
	cfg      *config.Config

	feed   *feed.Feed
	loader *feed.Loader

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	state  State
	width  int
	height int
	ready  bool
}

// NewModel builds the root model.
func NewModel(client *api.Client, registry *commands.Registry, cfg *config.Config) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "search, chat, or /help"
	input.Prompt = theme.InputPrompt.Render("❯ ")
	input.CharLimit = 2048
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Cyan)

	return Model{
		client:   client,
		registry: registry,
		renderer: render.New(theme, 80, cfg.UI.Markdown, render.WithSnippetWidth(cfg.UI.SnippetWidth)),
		theme:    theme,
		cfg:      cfg,
		feed:     feed.New(),
		loader:   feed.NewLoader(cfg.Search.MaxPages, cfg.Search.PagesPerSecond),
		input:    input,
		spin:     spin,
		state:    StateReady,
	}
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// requestTimeout converts the configured per-request timeout.
func (m Model) requestTimeout() time.Duration {
	return time.Duration(m.cfg.Server.TimeoutSecs) * time.Second
}
