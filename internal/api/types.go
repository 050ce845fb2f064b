// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatMessage is one turn of conversation history sent to the server.
// Role is "user" for typed input and "system" for server replies.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat message roles.
const (
	RoleUser   = "user"
	RoleSystem = "system"
)

// CmdRequest is the body of POST /api/cmd. Cmd is the bare command name
// without the leading slash.
type CmdRequest struct {
	Cmd     string        `json:"cmd"`
	Args    string        `json:"args"`
	History []ChatMessage `json:"history"`
}

// CmdResponse is the reply to POST /api/cmd. When Markdown is true the
// client may render Data as markdown; otherwise Data is literal text.
type CmdResponse struct {
	Data     string `json:"data"`
	Markdown bool   `json:"markdown"`
	Error    string `json:"error"`
}

// SearchItem is a single web result in the search proxy response.
type SearchItem struct {
	Title       string `json:"title"`
	HTMLTitle   string `json:"htmlTitle"`
	Link        string `json:"link"`
	DisplayLink string `json:"displayLink"`
	Snippet     string `json:"snippet"`
}

// Spelling carries the corrected query hint, when present.
type Spelling struct {
	CorrectedQuery string `json:"correctedQuery"`
}

// SearchResponse is the subset of the search proxy payload the client
// consumes. Items is nil when the query produced nothing.
type SearchResponse struct {
	Items    []SearchItem `json:"items"`
	Spelling *Spelling    `json:"spelling"`
}

// Bookmark is a saved shortcut on the server.
type Bookmark struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Shortcut string `json:"shortcut"`
}
