// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gsearch-tui/internal/logging"
	"github.com/jeranaias/gsearch-tui/internal/ui/styles"
)

// updateViewport re-projects the feed log into the viewport. Entries
// whose template is unknown are skipped, never rendered as errors.
func (m *Model) updateViewport(gotoBottom bool) {
	if !m.ready {
		return
	}
	blocks := make([]string, 0, m.feed.Len())
	for _, e := range m.feed.Entries() {
		out, ok := m.renderer.Render(e.Template, e.Data)
		if !ok {
			logging.Errorf("feed entry with unknown template %q skipped", e.Template)
			continue
		}
		blocks = append(blocks, out)
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

// View renders the full screen: header, feed viewport, status, input.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Render("gsearch")

	status := m.theme.Hint.Render("enter to run · /help for commands · esc to quit")
	if m.state == StateBusy {
		status = m.spin.View() + m.theme.Hint.Render(" working...")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}
