// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/google/uuid"

	"github.com/jeranaias/gsearch-tui/internal/commands"
	"github.com/jeranaias/gsearch-tui/internal/config"
	"github.com/jeranaias/gsearch-tui/internal/ranking"
)

// =============================================================================
// MESSAGES
// =============================================================================

// CommandResultMsg is delivered when a dispatched command finishes.
type CommandResultMsg struct {
	Invocation commands.Invocation
	Result     commands.Result
}

// SearchPageMsg is delivered when one result page fetch finishes. Session
// identifies the query session the fetch was started for; the page is
// discarded when it no longer matches the feed's session.
type SearchPageMsg struct {
	Session   uuid.UUID
	Query     string
	Offset    int
	Items     []ranking.Ranked
	Corrected string
	Err       error
}

// ConfigReloadedMsg is delivered when the config watcher reloads the
// configuration file.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}
