// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/gsearch-tui/internal/api"
	"github.com/jeranaias/gsearch-tui/internal/commands"
	"github.com/jeranaias/gsearch-tui/internal/config"
	"github.com/jeranaias/gsearch-tui/internal/feed"
	"github.com/jeranaias/gsearch-tui/internal/logging"
	"github.com/jeranaias/gsearch-tui/internal/ranking"
	"github.com/jeranaias/gsearch-tui/internal/render"
	"github.com/jeranaias/gsearch-tui/internal/ui/styles"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	infoStyle   = lipgloss.NewStyle().Foreground(styles.TextMuted)
)

const historyFileName = "repl_history"

// REPL is the line-at-a-time front end over the command router.
type REPL struct {
	line        *liner.State
	historyFile string

	client   *api.Client
	registry *commands.Registry
	renderer *render.Renderer
	feed     *feed.Feed
	cfg      *config.Config
}

// NewREPL creates the REPL and loads input history from the config dir.
func NewREPL(client *api.Client, registry *commands.Registry, cfg *config.Config) *REPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		if !strings.HasPrefix(prefix, "/") {
			return nil
		}
		var out []string
		for _, name := range registry.Names() {
			if strings.HasPrefix("/"+name, prefix) {
				out = append(out, "/"+name)
			}
		}
		return out
	})

	r := &REPL{
		line:     line,
		client:   client,
		registry: registry,
		renderer: render.New(styles.NewTheme(), 100, cfg.UI.Markdown, render.WithSnippetWidth(cfg.UI.SnippetWidth)),
		feed:     feed.New(),
		cfg:      cfg,
	}

	if dir, err := config.ConfigDir(); err == nil {
		r.historyFile = filepath.Join(dir, historyFileName)
		if f, err := os.Open(r.historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

// Close saves input history and restores the terminal.
func (r *REPL) Close() {
	if r.historyFile != "" {
		if f, err := os.Create(r.historyFile); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// Run reads and executes lines until EOF or an interrupt at an empty
// prompt.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Println(infoStyle.Render("gsearch · /help for commands · ctrl+d to exit"))

	for {
		input, err := r.line.Prompt(promptStyle.Render("❯ "))
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		inv, ok := commands.Normalize(input)
		if !ok {
			continue
		}
		r.line.AppendHistory(inv.Raw)
		r.execute(ctx, inv)
	}
}

// execute dispatches one invocation and prints what it produced. The
// plain REPL is naturally serialized, so no busy state is needed.
func (r *REPL) execute(ctx context.Context, inv commands.Invocation) {
	cmd, found := r.registry.Resolve(inv.Name)
	if !found {
		r.printEntry(commands.UnknownEntry(inv.Name))
		return
	}

	env := commands.Env{
		Client:   r.client,
		Registry: r.registry,
		History:  r.feed.History(),
	}
	if cmd.Name == commands.ChatCommand && inv.Args != "" {
		r.feed.AppendChat(api.RoleUser, inv.Args, false)
	}

	timeout := time.Duration(r.cfg.Server.TimeoutSecs) * time.Second
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	res := cmd.Run(reqCtx, env, inv.Args)
	cancel()

	if res.Err != nil {
		logging.Errorf("command /%s: %v", inv.Name, res.Err)
	}
	for _, e := range res.Entries {
		r.feed.Append(e)
		r.printEntry(e)
	}
	if res.Reset {
		r.feed.Reset()
		fmt.Println(styles.RenderInfo("conversation cleared"))
	}
	if res.StartQuery != "" {
		searchCtx, cancel := context.WithTimeout(ctx, timeout)
		r.search(searchCtx, res.StartQuery)
		cancel()
	}
}

// search fetches and prints the first result page. Paging beyond that is
// a TUI feature; the REPL prints a hint instead.
func (r *REPL) search(ctx context.Context, query string) {
	resp, err := r.client.Search(ctx, query, 1)
	if err != nil {
		if errors.Is(err, api.ErrNoResults) {
			r.printEntry(feed.BannerEntry("no results for \"" + query + "\""))
		} else {
			logging.Errorf("search %q: %v", query, err)
			r.printEntry(feed.ErrorEntry("search failed, see log"))
		}
		return
	}

	session := r.feed.StartQuery(query)
	if resp.Spelling != nil && resp.Spelling.CorrectedQuery != "" {
		r.printEntry(feed.BannerEntry("did you mean: " + resp.Spelling.CorrectedQuery))
	}
	for _, ranked := range ranking.Rank(resp.Items, r.cfg.Ranking.Priority) {
		link := render.RewriteURL(ranked.Item.Link)
		card := render.ResultCard{
			Title:      ranked.Item.Title,
			URL:        link,
			Breadcrumb: render.Breadcrumb(link),
			FaviconURL: render.FaviconURL(link),
			Snippet:    ranked.Item.Snippet,
		}
		if r.feed.AppendResult(session, card) {
			entries := r.feed.Entries()
			r.printEntry(entries[len(entries)-1])
		}
	}
}

func (r *REPL) printEntry(e feed.Entry) {
	out, ok := r.renderer.Render(e.Template, e.Data)
	if !ok {
		logging.Errorf("entry with unknown template %q skipped", e.Template)
		return
	}
	fmt.Println(out)
}
