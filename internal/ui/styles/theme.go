// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability once at startup and adjusts accordingly.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Result cards
	Card           lipgloss.Style
	CardTitle      lipgloss.Style
	CardBreadcrumb lipgloss.Style
	CardSnippet    lipgloss.Style
	CardURL        lipgloss.Style

	// Chat lines
	UserLine   lipgloss.Style
	SystemLine lipgloss.Style

	// Banners and status
	Banner    lipgloss.Style
	ErrorLine lipgloss.Style
	Hint      lipgloss.Style

	// Input area
	InputPrompt lipgloss.Style

	// Tables (help, bookmarks)
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
}

// NewTheme builds the theme for the current terminal.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.CardTitle = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.CardBreadcrumb = lipgloss.NewStyle().Foreground(Emerald)
	t.CardSnippet = lipgloss.NewStyle().Foreground(TextSecondary)
	t.CardURL = lipgloss.NewStyle().Foreground(LinkColor).Underline(true)

	t.UserLine = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	t.SystemLine = lipgloss.NewStyle().Foreground(Purple)

	t.Banner = lipgloss.NewStyle().Foreground(Amber).Italic(true)
	t.ErrorLine = lipgloss.NewStyle().Foreground(Rose)
	t.Hint = lipgloss.NewStyle().Foreground(TextMuted)

	t.InputPrompt = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	t.TableHeader = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true).Underline(true)
	t.TableCell = lipgloss.NewStyle().Foreground(TextSecondary)

	return t
}
