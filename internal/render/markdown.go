// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN
// =============================================================================

// newMarkdownRenderer builds the glamour renderer for the given width.
// Returns nil when the terminal environment defeats glamour; callers fall
// back to literal text plus chroma code highlighting.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// Markdown renders text as markdown when flagged is true and markdown
// rendering is enabled; otherwise the text is returned literally. Render
// failures also fall back to the literal text, never to an error message.
func (r *Renderer) Markdown(text string, flagged bool) string {
	if !flagged || !r.markdownEnabled {
		return text
	}
	if r.md == nil {
		return highlightFences(text)
	}
	out, err := r.md.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// CHROMA FALLBACK
// =============================================================================

// highlightFences syntax-highlights fenced code blocks in otherwise plain
// text. Used when glamour is unavailable.
func highlightFences(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	var code []string
	var language string
	inFence := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if inFence {
				out = append(out, highlightCode(strings.Join(code, "\n"), language))
				code = nil
				inFence = false
			} else {
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inFence = true
			}
			continue
		}
		if inFence {
			code = append(code, line)
		} else {
			out = append(out, line)
		}
	}
	if inFence && len(code) > 0 {
		out = append(out, highlightCode(strings.Join(code, "\n"), language))
	}
	return strings.Join(out, "\n")
}

// highlightCode applies chroma terminal highlighting, falling back to the
// original text when tokenization fails.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
