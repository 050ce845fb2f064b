// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/gsearch-tui/internal/api"
	"github.com/jeranaias/gsearch-tui/internal/commands"
	"github.com/jeranaias/gsearch-tui/internal/feed"
	"github.com/jeranaias/gsearch-tui/internal/logging"
	"github.com/jeranaias/gsearch-tui/internal/ranking"
	"github.com/jeranaias/gsearch-tui/internal/render"
)

// Update is the message loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, tea.Batch(cmd, m.maybeAutoload())

	case spinner.TickMsg:
		if m.state != StateBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case CommandResultMsg:
		return m.handleCommandResult(msg)

	case SearchPageMsg:
		return m.handleSearchPage(msg)

	case ConfigReloadedMsg:
		// keep the loader: its guard state belongs to the live session
		m.cfg = msg.Cfg
		m.renderer = render.New(m.theme, m.width, msg.Cfg.UI.Markdown,
			render.WithSnippetWidth(msg.Cfg.UI.SnippetWidth))
		m.updateViewport(false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize lays out the viewport between the header and footer.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	vpHeight := msg.Height - headerHeight - footerHeight
	if vpHeight < minViewportH {
		vpHeight = minViewportH
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}
	m.input.Width = msg.Width - 4
	m.renderer.SetWidth(msg.Width)
	m.updateViewport(false)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		return m.submitInput()

	case "up", "down", "pgup", "pgdown", "home", "end":
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		return m, tea.Batch(vpCmd, m.maybeAutoload())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput normalizes and dispatches the current input line.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	if m.state == StateBusy {
		return m, nil
	}

	inv, ok := commands.Normalize(m.input.Value())
	if !ok {
		m.input.SetValue("")
		return m, nil
	}
	m.input.SetValue("")

	cmd, found := m.registry.Resolve(inv.Name)
	if !found {
		m.feed.Append(commands.UnknownEntry(inv.Name))
		m.updateViewport(true)
		return m, nil
	}

	// History snapshot precedes the new user turn: the server appends the
	// turn itself from args.
	env := commands.Env{
		Client:   m.client,
		Registry: m.registry,
		History:  m.feed.History(),
	}

	if cmd.Name == commands.ChatCommand && inv.Args != "" {
		m.feed.AppendChat(api.RoleUser, inv.Args, false)
	} else if cmd.Name == "search" && inv.Args != "" {
		// echoed, but kept out of conversation history
		m.feed.Append(feed.EchoEntry(inv.Raw))
	}
	m.updateViewport(true)

	m.state = StateBusy
	timeout := m.requestTimeout()
	run := cmd.Run
	args := inv.Args
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return CommandResultMsg{Invocation: inv, Result: run(ctx, env, args)}
	})
}

func (m Model) handleCommandResult(msg CommandResultMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady

	res := msg.Result
	if res.Err != nil {
		logging.Errorf("command /%s: %v", msg.Invocation.Name, res.Err)
	}
	for _, e := range res.Entries {
		m.feed.Append(e)
	}

	var cmd tea.Cmd
	if res.Reset {
		m.feed.Reset()
		m.loader.Reset()
	}
	if res.StartQuery != "" {
		session := m.feed.StartQuery(res.StartQuery)
		offset := m.loader.Begin(session)
		cmd = m.fetchPage(session, res.StartQuery, offset)
	}

	m.updateViewport(true)
	return m, cmd
}

// fetchPage builds the page fetch command. Everything it needs is
// captured up front; the closure never touches the model.
func (m Model) fetchPage(session uuid.UUID, query string, offset int) tea.Cmd {
	client := m.client
	table := m.cfg.Ranking.Priority
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Search(ctx, query, offset)
		if err != nil {
			return SearchPageMsg{Session: session, Query: query, Offset: offset, Err: err}
		}
		msg := SearchPageMsg{
			Session: session,
			Query:   query,
			Offset:  offset,
			Items:   ranking.Rank(resp.Items, table),
		}
		if resp.Spelling != nil {
			msg.Corrected = resp.Spelling.CorrectedQuery
		}
		return msg
	}
}

func (m Model) handleSearchPage(msg SearchPageMsg) (tea.Model, tea.Cmd) {
	if msg.Session != m.feed.Session() {
		logging.Infof("discarding stale page for %q offset %d", msg.Query, msg.Offset)
		return m, nil
	}

	if msg.Err != nil {
		m.loader.Fail(msg.Session, msg.Offset)
		logging.Errorf("search %q offset %d: %v", msg.Query, msg.Offset, msg.Err)
		if msg.Offset == 1 {
			if errors.Is(msg.Err, api.ErrNoResults) {
				m.feed.AppendBanner("no results for \"" + msg.Query + "\"")
			} else {
				m.feed.AppendError("search failed, see log")
			}
			m.updateViewport(true)
		}
		return m, nil
	}

	if !m.loader.Complete(msg.Session, msg.Offset) {
		return m, nil
	}

	// The correction hint lands before the first result of whichever page
	// carried it, not only the first.
	if msg.Corrected != "" {
		m.feed.AppendBanner("did you mean: " + msg.Corrected)
	}
	if len(msg.Items) == 0 && msg.Offset == 1 {
		m.feed.AppendBanner("no results for \"" + msg.Query + "\"")
	}

	for _, ranked := range msg.Items {
		link := render.RewriteURL(ranked.Item.Link)
		m.feed.AppendResult(msg.Session, render.ResultCard{
			Title:      ranked.Item.Title,
			URL:        link,
			Breadcrumb: render.Breadcrumb(link),
			FaviconURL: render.FaviconURL(link),
			Snippet:    ranked.Item.Snippet,
		})
	}
	m.updateViewport(msg.Offset == 1)
	return m, nil
}

// maybeAutoload requests the next result page when the user has scrolled
// near the bottom and results are the newest thing in the feed. The
// loader's guard makes repeat calls at the same position free.
func (m Model) maybeAutoload() tea.Cmd {
	if !m.cfg.Search.Autoload || !m.ready {
		return nil
	}
	if !m.feed.LastIsResult() {
		return nil
	}
	if m.viewport.ScrollPercent() < autoloadThreshold {
		return nil
	}
	offset, ok := m.loader.Next(m.feed.MaxIdx())
	if !ok {
		return nil
	}
	return m.fetchPage(m.feed.Session(), m.feed.Query(), offset)
}
