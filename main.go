// gsearch-tui - A terminal client for the gsearch server.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/gsearch-tui/internal/api"
	"github.com/jeranaias/gsearch-tui/internal/cli"
	"github.com/jeranaias/gsearch-tui/internal/commands"
	"github.com/jeranaias/gsearch-tui/internal/config"
	"github.com/jeranaias/gsearch-tui/internal/logging"
	"github.com/jeranaias/gsearch-tui/internal/ui"
	"github.com/jeranaias/gsearch-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		serverFlag  = flag.String("server", "", "gsearch server URL (overrides config)")
		plainFlag   = flag.Bool("plain", false, "line-mode REPL instead of the full TUI")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("gsearch-tui %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if *serverFlag != "" {
		cfg.Server.URL = *serverFlag
		if err := cfg.Validate(); err != nil {
			fatal(err)
		}
	}
	config.SetGlobal(cfg)

	if dir, err := config.ConfigDir(); err == nil {
		logging.Setup(dir)
	} else {
		fmt.Fprintln(os.Stderr, styles.RenderWarning("file logging disabled: "+err.Error()))
	}

	client := api.NewClient(cfg.Server.URL, time.Duration(cfg.Server.TimeoutSecs)*time.Second)

	// An invalid builtin registry is a programming error; refuse to start.
	registry, err := commands.Defaults()
	if err != nil {
		fatal(err)
	}

	if *plainFlag || !cli.IsInteractive() {
		runREPL(client, registry, cfg)
		return
	}
	runTUI(client, registry, cfg)
}

func runREPL(client *api.Client, registry *commands.Registry, cfg *config.Config) {
	repl := cli.NewREPL(client, registry, cfg)
	defer repl.Close()
	if err := repl.Run(context.Background()); err != nil {
		fatal(err)
	}
}

func runTUI(client *api.Client, registry *commands.Registry, cfg *config.Config) {
	p := tea.NewProgram(
		ui.NewModel(client, registry, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Hot-reload the config file for the lifetime of the program.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go config.Watch(watchCtx, func(reloaded *config.Config) {
		p.Send(ui.ConfigReloadedMsg{Cfg: reloaded})
	})

	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
	os.Exit(1)
}
