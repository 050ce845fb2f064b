// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns feed entries into styled terminal text.
//
// Rendering goes through a registry of named templates. Asking for a
// template that does not exist returns ok=false and the caller skips that
// entry; a bad template name never produces visible output or an error
// card. Templates are pure functions of their data plus the renderer's
// width and theme.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gsearch-tui/internal/ui/styles"
	"github.com/jeranaias/gsearch-tui/internal/util"
)

// Template names understood by the registry.
const (
	TemplateResult = "result"
	TemplateChat   = "chat"
	TemplateBanner = "banner"
	TemplateError  = "error"
	TemplateTable  = "table"
	TemplateList   = "list"
	TemplateText   = "text"
)

// =============================================================================
// TEMPLATE DATA
// =============================================================================

// ResultCard is the data for one web search result.
type ResultCard struct {
	Index      int // 1-based position within the query session
	Title      string
	URL        string // already host-rewritten
	Breadcrumb string
	FaviconURL string
	Snippet    string
}

// ChatLine is one rendered conversation turn.
type ChatLine struct {
	Role     string
	Content  string
	Markdown bool
}

// Banner is a one-line notice (spelling correction, paging notes).
type Banner struct {
	Text string
}

// ErrorLine is a user-visible failure notice.
type ErrorLine struct {
	Text string
}

// Table is a column-aligned table (help, bookmarks).
type Table struct {
	Columns []string
	Rows    [][]string
}

// List is a bulleted list.
type List struct {
	Items []string
}

// Text is a free-form server response with a markdown flag.
type Text struct {
	Body     string
	Markdown bool
}

// =============================================================================
// RENDERER
// =============================================================================

type templateFunc func(data any) (string, bool)

// Renderer renders template data at a fixed width and theme.
type Renderer struct {
	theme           *styles.Theme
	width           int
	snippetWidth    int
	markdownEnabled bool
	md              *glamour.TermRenderer
	templates       map[string]templateFunc
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSnippetWidth truncates result snippets to a display width.
func WithSnippetWidth(w int) Option {
	return func(r *Renderer) { r.snippetWidth = w }
}

// New creates a renderer. markdownEnabled=false forces every template to
// literal text regardless of per-entry markdown flags.
func New(theme *styles.Theme, width int, markdownEnabled bool, opts ...Option) *Renderer {
	r := &Renderer{
		theme:           theme,
		width:           width,
		markdownEnabled: markdownEnabled,
	}
	if markdownEnabled {
		r.md = newMarkdownRenderer(width)
	}
	for _, opt := range opts {
		opt(r)
	}
	r.templates = map[string]templateFunc{
		TemplateResult: r.renderResult,
		TemplateChat:   r.renderChat,
		TemplateBanner: r.renderBanner,
		TemplateError:  r.renderError,
		TemplateTable:  r.renderTable,
		TemplateList:   r.renderList,
		TemplateText:   r.renderText,
	}
	return r
}

// SetWidth adjusts the rendering width, rebuilding the markdown renderer.
func (r *Renderer) SetWidth(width int) {
	if width == r.width {
		return
	}
	r.width = width
	if r.markdownEnabled {
		r.md = newMarkdownRenderer(width)
	}
}

// Width returns the current rendering width.
func (r *Renderer) Width() int {
	return r.width
}

// Render looks up the named template and renders data through it.
// Unknown template names and mismatched data types return ("", false).
func (r *Renderer) Render(template string, data any) (string, bool) {
	fn, ok := r.templates[template]
	if !ok {
		return "", false
	}
	return fn(data)
}

// =============================================================================
// TEMPLATES
// =============================================================================

func (r *Renderer) renderResult(data any) (string, bool) {
	card, ok := data.(ResultCard)
	if !ok {
		return "", false
	}
	snippet := util.CollapseSpace(card.Snippet)
	if r.snippetWidth > 0 {
		snippet = util.TruncateWidth(snippet, r.snippetWidth)
	}

	var b strings.Builder
	b.WriteString(r.theme.CardBreadcrumb.Render(card.Breadcrumb))
	b.WriteString("\n")
	b.WriteString(r.theme.CardTitle.Render(fmt.Sprintf("%d. %s", card.Index, card.Title)))
	if snippet != "" {
		b.WriteString("\n")
		b.WriteString(r.theme.CardSnippet.Render(snippet))
	}
	b.WriteString("\n")
	b.WriteString(r.theme.CardURL.Render(card.URL))

	width := r.width - 4
	if width < 20 {
		width = 20
	}
	return r.theme.Card.MaxWidth(width).Render(b.String()), true
}

func (r *Renderer) renderChat(data any) (string, bool) {
	line, ok := data.(ChatLine)
	if !ok {
		return "", false
	}
	content := r.Markdown(line.Content, line.Markdown)
	if line.Role == "user" {
		return r.theme.UserLine.Render("> " + line.Content), true
	}
	return r.theme.SystemLine.Render(content), true
}

func (r *Renderer) renderBanner(data any) (string, bool) {
	banner, ok := data.(Banner)
	if !ok {
		return "", false
	}
	return r.theme.Banner.Render(banner.Text), true
}

func (r *Renderer) renderError(data any) (string, bool) {
	e, ok := data.(ErrorLine)
	if !ok {
		return "", false
	}
	return r.theme.ErrorLine.Render("✗ " + e.Text), true
}

func (r *Renderer) renderTable(data any) (string, bool) {
	table, ok := data.(Table)
	if !ok || len(table.Columns) == 0 {
		return "", false
	}

	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = util.StringWidth(col)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && util.StringWidth(cell) > widths[i] {
				widths[i] = util.StringWidth(cell)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-util.StringWidth(s))
	}

	var b strings.Builder
	headerCells := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		headerCells[i] = r.theme.TableHeader.Render(pad(col, widths[i]))
	}
	b.WriteString(strings.Join(headerCells, "  "))
	for _, row := range table.Rows {
		b.WriteString("\n")
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			if i < len(widths) {
				cells = append(cells, r.theme.TableCell.Render(pad(cell, widths[i])))
			}
		}
		b.WriteString(strings.Join(cells, "  "))
	}
	return b.String(), true
}

func (r *Renderer) renderList(data any) (string, bool) {
	list, ok := data.(List)
	if !ok {
		return "", false
	}
	lines := make([]string, len(list.Items))
	for i, item := range list.Items {
		lines[i] = "  " + lipgloss.NewStyle().Foreground(styles.Cyan).Render("•") + " " + item
	}
	return strings.Join(lines, "\n"), true
}

func (r *Renderer) renderText(data any) (string, bool) {
	text, ok := data.(Text)
	if !ok {
		return "", false
	}
	return r.Markdown(text.Body, text.Markdown), true
}
